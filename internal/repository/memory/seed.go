package memory

import (
	"context"
	"fmt"

	"github.com/optimus-erp/procure-api/internal/domain/product"
	"github.com/optimus-erp/procure-api/internal/domain/supplier"
)

type seedProduct struct {
	name       string
	priceCents int64
	stock      int
	categoryID int64
	supplierID int64
	sku        string
	unit       string
}

var seedProducts = []seedProduct{
	{"Saumon Atlantique", 1599, 50, 1, 1, "FISH-SAL-001", "kg"},
	{"Poulet Fermier Bio", 850, 8, 2, 2, "MEAT-CHK-001", "kg"},
	{"Tomates Cœur de Bœuf", 399, 25, 3, 2, "VEG-TOM-001", "kg"},
	{"Huile d'Olive Extra Vierge", 1290, 15, 4, 3, "GRO-OIL-001", "L"},
	{"Farine T45", 120, 5, 4, 3, "GRO-FLR-001", "kg"},
	{"Riz Basmati", 250, 100, 4, 3, "GRO-RIC-001", "kg"},
	{"Fromage Comté AOP", 1890, 12, 5, 1, "DAI-CHE-001", "kg"},
	{"Beurre Doux", 450, 7, 5, 1, "DAI-BUT-001", "kg"},
}

type seedSupplier struct {
	name     string
	email    string
	phone    string
	address  string
	approved bool
}

var seedSuppliers = []seedSupplier{
	{"Metro Cash & Carry", "commandes@metro.fr", "+33 1 40 12 34 56", "12 Rue de Bercy, 75012 Paris", true},
	{"Rungis Express", "contact@rungis-express.fr", "+33 1 41 80 80 80", "1 Rue de la Tour, 94150 Rungis", true},
	{"Transgourmet", "service@transgourmet.fr", "+33 1 49 90 50 00", "17 Avenue du Maréchal, 91300 Massy", true},
	{"Pomona", "pro@pomona.fr", "+33 1 30 05 30 05", "3 Boulevard de la Seine, 92000 Nanterre", false},
}

// Stores bundles the in-memory repositories that make up a standalone
// datastore with no external dependencies.
type Stores struct {
	Products  *ProductRepository
	Suppliers *SupplierRepository
	Orders    *OrderRepository
	APIKeys   *APIKeyRepository
}

// NewStores returns empty in-memory repositories.
func NewStores() *Stores {
	return &Stores{
		Products:  NewProductRepository(),
		Suppliers: NewSupplierRepository(),
		Orders:    NewOrderRepository(),
		APIKeys:   NewAPIKeyRepository(),
	}
}

// NewSeededStores returns in-memory repositories preloaded with a demo
// catalog: eight products and four suppliers, three of them approved.
func NewSeededStores() (*Stores, error) {
	ctx := context.Background()
	stores := NewStores()

	for _, ss := range seedSuppliers {
		id, err := stores.Suppliers.NextID(ctx)
		if err != nil {
			return nil, err
		}
		s := supplier.New(supplier.CreateParams{
			ID:      id,
			Name:    ss.name,
			Email:   ss.email,
			Phone:   ss.phone,
			Address: ss.address,
		})
		if ss.approved {
			s = s.Approve()
		}
		if err := stores.Suppliers.Create(ctx, s); err != nil {
			return nil, fmt.Errorf("seeding supplier %q: %w", ss.name, err)
		}
	}

	for _, sp := range seedProducts {
		id, err := stores.Products.NextID(ctx)
		if err != nil {
			return nil, err
		}
		p, err := product.New(product.CreateParams{
			ID:         id,
			Name:       sp.name,
			PriceCents: sp.priceCents,
			Currency:   "EUR",
			Stock:      sp.stock,
			CategoryID: sp.categoryID,
			SupplierID: sp.supplierID,
			SKU:        sp.sku,
			Unit:       sp.unit,
		})
		if err != nil {
			return nil, fmt.Errorf("seeding product %q: %w", sp.name, err)
		}
		if err := stores.Products.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("seeding product %q: %w", sp.name, err)
		}
	}

	return stores, nil
}
