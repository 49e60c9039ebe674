// Command catalog-ingest imports gzipped CSV supplier catalogs into the
// product table. SKUs exported by several suppliers are deduplicated with
// per-file bloom filters; the first file listed wins.
//
// Expected CSV columns:
//
//	supplier_id,sku,name,price,currency,stock,category_id,unit
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/optimus-erp/procure-api/internal/repository"
)

const (
	bloomCapacity = 1_000_000
	bloomFPR      = 0.0001
	batchSize     = 500
)

// row is one parsed catalog line.
type row struct {
	supplierID int64
	sku        string
	name       string
	price      decimal.Decimal
	currency   string
	stock      int
	categoryID int64
	unit       string
}

func main() {
	var (
		dataDir     string
		databaseURL string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing *.csv.gz catalog files")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, databaseURL); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, dataDir, databaseURL string) error {
	files, err := filepath.Glob(filepath.Join(dataDir, "*.csv.gz"))
	if err != nil {
		return errors.Wrap(err, "glob catalog files")
	}
	if len(files) == 0 {
		return errors.Errorf("no *.csv.gz files in %s", dataDir)
	}
	sort.Strings(files)

	// Pass 1: one bloom filter of SKUs per file, built concurrently.
	slog.Info("pass 1: building sku filters", slog.Int("files", len(files)))

	filters, err := buildSKUFilters(ctx, files)
	if err != nil {
		return errors.Wrap(err, "build sku filters")
	}

	// Pass 2: parse rows, dropping SKUs already claimed by an earlier file.
	slog.Info("pass 2: parsing catalogs")

	rows, err := collectRows(ctx, files, filters)
	if err != nil {
		return errors.Wrap(err, "collect rows")
	}

	slog.Info("rows to ingest", slog.Int("count", len(rows)))
	if len(rows) == 0 {
		return nil
	}

	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	return writeRows(ctx, pool, rows)
}

// buildSKUFilters creates one bloom filter per file, concurrently.
func buildSKUFilters(ctx context.Context, files []string) ([]*bloom.BloomFilter, error) {
	filters := make([]*bloom.BloomFilter, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(buildFilterForFile(ctx, i, f, filters))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return filters, nil
}

func buildFilterForFile(ctx context.Context, idx int, path string, filters []*bloom.BloomFilter) func() error {
	return func() error {
		filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
		var count uint64

		if err := streamCatalog(ctx, path, func(r row) error {
			filter.AddString(r.sku)
			count++
			return nil
		}); err != nil {
			return errors.Wrapf(err, "build filter for %s", path)
		}

		slog.Info("pass 1 complete", slog.String("file", path), slog.Uint64("skus", count))
		filters[idx] = filter
		return nil
	}
}

// collectRows parses every file sequentially, in the order files are listed.
// A SKU present in an earlier file's filter is skipped: a bloom false
// positive can at worst drop a row, never duplicate one.
func collectRows(ctx context.Context, files []string, filters []*bloom.BloomFilter) ([]row, error) {
	var rows []row
	seen := make(map[string]struct{})

	for i, f := range files {
		var kept, skipped uint64

		err := streamCatalog(ctx, f, func(r row) error {
			if _, dup := seen[r.sku]; dup {
				skipped++
				return nil
			}
			for j := range i {
				if filters[j].TestString(r.sku) {
					skipped++
					return nil
				}
			}
			seen[r.sku] = struct{}{}
			rows = append(rows, r)
			kept++
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", f)
		}

		slog.Info("pass 2 complete",
			slog.String("file", f),
			slog.Uint64("kept", kept),
			slog.Uint64("skipped", skipped),
		)
	}

	return rows, nil
}

// streamCatalog opens a gzipped CSV file and calls fn for each data row.
// A header row is detected by a non-numeric first column and skipped.
func streamCatalog(ctx context.Context, path string, fn func(row) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	reader := csv.NewReader(gz)
	reader.FieldsPerRecord = 8
	reader.ReuseRecord = true

	for lineNo := 1; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}

		r, err := parseRow(record)
		if err != nil {
			if lineNo == 1 {
				continue // header
			}
			return errors.Wrapf(err, "line %d", lineNo)
		}

		if err := fn(r); err != nil {
			return err
		}
	}
}

func parseRow(record []string) (row, error) {
	supplierID, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return row{}, errors.Wrap(err, "supplier_id")
	}
	price, err := decimal.NewFromString(record[3])
	if err != nil {
		return row{}, errors.Wrap(err, "price")
	}
	stock, err := strconv.Atoi(record[5])
	if err != nil {
		return row{}, errors.Wrap(err, "stock")
	}
	categoryID, err := strconv.ParseInt(record[6], 10, 64)
	if err != nil {
		return row{}, errors.Wrap(err, "category_id")
	}

	r := row{
		supplierID: supplierID,
		sku:        record[1],
		name:       record[2],
		price:      price,
		currency:   record[4],
		stock:      stock,
		categoryID: categoryID,
		unit:       record[7],
	}
	if r.sku == "" || r.name == "" {
		return row{}, errors.New("sku and name required")
	}
	if r.currency == "" {
		r.currency = "EUR"
	}
	return r, nil
}

const upsertBySKUSQL = `INSERT INTO products (name, price, currency, stock, category_id, supplier_id, sku, unit)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (sku) WHERE sku <> '' DO UPDATE SET
		name = EXCLUDED.name, price = EXCLUDED.price, currency = EXCLUDED.currency,
		stock = EXCLUDED.stock, category_id = EXCLUDED.category_id,
		supplier_id = EXCLUDED.supplier_id, unit = EXCLUDED.unit, updated_at = now()`

// writeRows upserts all rows keyed by SKU, in batches.
func writeRows(ctx context.Context, pool *pgxpool.Pool, rows []row) error {
	slog.Info("writing products", slog.Int("count", len(rows)))

	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))

		batch := &pgx.Batch{}
		for _, r := range rows[start:end] {
			batch.Queue(upsertBySKUSQL,
				r.name, r.price, r.currency, r.stock,
				r.categoryID, r.supplierID, r.sku, r.unit,
			)
		}

		if err := pool.SendBatch(ctx, batch).Close(); err != nil {
			return errors.Wrapf(err, "write batch at %d", start)
		}

		slog.Info("write progress", slog.Int("written", end), slog.Int("total", len(rows)))
	}

	return nil
}
