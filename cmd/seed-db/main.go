// Command seed-db loads the demo catalog, supplier registry and a default
// API key into PostgreSQL.
package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/optimus-erp/procure-api/internal/repository"
)

type supplierJSON struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	IsActive   bool   `json:"is_active"`
	IsApproved bool   `json:"is_approved"`
}

type productJSON struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
	Stock      int             `json:"stock"`
	CategoryID int64           `json:"category_id"`
	SupplierID int64           `json:"supplier_id"`
	SKU        string          `json:"sku"`
	Unit       string          `json:"unit"`
}

func main() {
	var (
		databaseURL   string
		productsFile  string
		suppliersFile string
		apiKey        string
		apiKeyPepper  string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "db/seed/products.json", "path to products JSON file")
	flag.StringVar(&suppliersFile, "suppliers-file", "db/seed/suppliers.json", "path to suppliers JSON file")
	flag.StringVar(&apiKey, "api-key", "", "API key to seed (or PROCURE_SEED_API_KEY env)")
	flag.StringVar(&apiKeyPepper, "api-key-pepper", "", "HMAC pepper for API key hashing (or PROCURE_API_KEY_PEPPER env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if apiKey == "" {
		apiKey = os.Getenv("PROCURE_SEED_API_KEY")
	}
	if apiKey == "" {
		slog.Error("API key is required: set --api-key or PROCURE_SEED_API_KEY")
		os.Exit(1)
	}
	if apiKeyPepper == "" {
		apiKeyPepper = os.Getenv("PROCURE_API_KEY_PEPPER")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, suppliersFile, apiKey, apiKeyPepper); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile, suppliersFile, apiKey, pepper string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := seedSuppliers(ctx, pool, suppliersFile); err != nil {
		return errors.Wrap(err, "seed suppliers")
	}

	if err := seedProducts(ctx, pool, productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if err := seedAPIKey(ctx, pool, apiKey, pepper); err != nil {
		return errors.Wrap(err, "seed api key")
	}

	return nil
}

const upsertSupplierSQL = `INSERT INTO suppliers (id, name, email, phone, address, is_active, is_approved)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone,
		address = EXCLUDED.address, is_active = EXCLUDED.is_active,
		is_approved = EXCLUDED.is_approved, updated_at = now()`

func seedSuppliers(ctx context.Context, pool *pgxpool.Pool, suppliersFile string) error {
	slog.Info("reading suppliers file", slog.String("path", suppliersFile))

	data, err := os.ReadFile(suppliersFile)
	if err != nil {
		return errors.Wrap(err, "read suppliers file")
	}

	var suppliers []supplierJSON
	if err := json.Unmarshal(data, &suppliers); err != nil {
		return errors.Wrap(err, "parse suppliers JSON")
	}

	slog.Info("upserting suppliers", slog.Int("count", len(suppliers)))

	for _, s := range suppliers {
		if _, err := pool.Exec(ctx, upsertSupplierSQL,
			s.ID, s.Name, s.Email, s.Phone, s.Address, s.IsActive, s.IsApproved,
		); err != nil {
			return errors.Wrapf(err, "upsert supplier %d", s.ID)
		}

		slog.Info("upserted supplier", slog.Int64("id", s.ID), slog.String("name", s.Name))
	}

	return syncSequence(ctx, pool, "suppliers")
}

const upsertProductSQL = `INSERT INTO products (id, name, price, currency, stock, category_id, supplier_id, sku, unit)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name, price = EXCLUDED.price, currency = EXCLUDED.currency,
		stock = EXCLUDED.stock, category_id = EXCLUDED.category_id,
		supplier_id = EXCLUDED.supplier_id, sku = EXCLUDED.sku,
		unit = EXCLUDED.unit, updated_at = now()`

func seedProducts(ctx context.Context, pool *pgxpool.Pool, productsFile string) error {
	slog.Info("reading products file", slog.String("path", productsFile))

	data, err := os.ReadFile(productsFile)
	if err != nil {
		return errors.Wrap(err, "read products file")
	}

	var products []productJSON
	if err := json.Unmarshal(data, &products); err != nil {
		return errors.Wrap(err, "parse products JSON")
	}

	slog.Info("upserting products", slog.Int("count", len(products)))

	for _, p := range products {
		if _, err := pool.Exec(ctx, upsertProductSQL,
			p.ID, p.Name, p.Price, p.Currency, p.Stock,
			p.CategoryID, p.SupplierID, p.SKU, p.Unit,
		); err != nil {
			return errors.Wrapf(err, "upsert product %d", p.ID)
		}

		slog.Info("upserted product", slog.Int64("id", p.ID), slog.String("name", p.Name))
	}

	return syncSequence(ctx, pool, "products")
}

// syncSequence moves the table's id sequence past explicitly inserted IDs so
// later NextID calls do not collide with seeded rows.
func syncSequence(ctx context.Context, pool *pgxpool.Pool, table string) error {
	sql := `SELECT setval(pg_get_serial_sequence('` + table + `', 'id'), (SELECT COALESCE(MAX(id), 1) FROM ` + table + `))`
	if _, err := pool.Exec(ctx, sql); err != nil {
		return errors.Wrapf(err, "sync %s id sequence", table)
	}
	return nil
}

const upsertAPIKeySQL = `INSERT INTO api_keys (key_hash, name, scopes, active)
	VALUES ($1, $2, $3, TRUE)
	ON CONFLICT (key_hash) DO UPDATE SET
		name = EXCLUDED.name, scopes = EXCLUDED.scopes, active = TRUE`

func seedAPIKey(ctx context.Context, pool *pgxpool.Pool, apiKey, pepper string) error {
	slog.Info("seeding default API key")

	mac := hmac.New(sha256.New, []byte(pepper))
	mac.Write([]byte(apiKey))
	keyHash := hex.EncodeToString(mac.Sum(nil))

	if _, err := pool.Exec(ctx, upsertAPIKeySQL,
		keyHash, "Default test key", []string{"write"},
	); err != nil {
		return errors.Wrap(err, "upsert default API key")
	}

	slog.Info("upserted API key", slog.String("name", "Default test key"))

	return nil
}
