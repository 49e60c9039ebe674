package event

import "time"

// Event type tags.
const (
	TypeOrderCreated   = "OrderCreated"
	TypeOrderSubmitted = "OrderSubmitted"
	TypeOrderConfirmed = "OrderConfirmed"
	TypeOrderDelivered = "OrderDelivered"
	TypeOrderCancelled = "OrderCancelled"
	TypeProductCreated = "ProductCreated"
	TypeStockUpdated   = "StockUpdated"
	TypeLowStockAlert  = "LowStockAlert"
)

// OrderCreated signals that a new order entered the system.
type OrderCreated struct {
	Base
	OrderID     int64
	OrderNumber string
	TenantID    int64
	SupplierID  int64
	TotalCents  int64
	ItemCount   int
}

func NewOrderCreated(orderID int64, orderNumber string, tenantID, supplierID, totalCents int64, itemCount int) OrderCreated {
	return OrderCreated{
		Base:        newBase(TypeOrderCreated),
		OrderID:     orderID,
		OrderNumber: orderNumber,
		TenantID:    tenantID,
		SupplierID:  supplierID,
		TotalCents:  totalCents,
		ItemCount:   itemCount,
	}
}

// OrderSubmitted signals a DRAFT order moved to PENDING.
type OrderSubmitted struct {
	Base
	OrderID     int64
	OrderNumber string
	SubmittedAt time.Time
}

func NewOrderSubmitted(orderID int64, orderNumber string, submittedAt time.Time) OrderSubmitted {
	return OrderSubmitted{
		Base:        newBase(TypeOrderSubmitted),
		OrderID:     orderID,
		OrderNumber: orderNumber,
		SubmittedAt: submittedAt,
	}
}

// OrderConfirmed signals a DRAFT/PENDING order moved to CONFIRMED.
type OrderConfirmed struct {
	Base
	OrderID     int64
	OrderNumber string
	ConfirmedAt time.Time
}

func NewOrderConfirmed(orderID int64, orderNumber string, confirmedAt time.Time) OrderConfirmed {
	return OrderConfirmed{
		Base:        newBase(TypeOrderConfirmed),
		OrderID:     orderID,
		OrderNumber: orderNumber,
		ConfirmedAt: confirmedAt,
	}
}

// OrderDelivered signals a CONFIRMED order moved to DELIVERED.
type OrderDelivered struct {
	Base
	OrderID     int64
	OrderNumber string
	DeliveredAt time.Time
}

func NewOrderDelivered(orderID int64, orderNumber string, deliveredAt time.Time) OrderDelivered {
	return OrderDelivered{
		Base:        newBase(TypeOrderDelivered),
		OrderID:     orderID,
		OrderNumber: orderNumber,
		DeliveredAt: deliveredAt,
	}
}

// OrderCancelled signals an order moved to CANCELLED.
type OrderCancelled struct {
	Base
	OrderID     int64
	OrderNumber string
	CancelledAt time.Time
}

func NewOrderCancelled(orderID int64, orderNumber string, cancelledAt time.Time) OrderCancelled {
	return OrderCancelled{
		Base:        newBase(TypeOrderCancelled),
		OrderID:     orderID,
		OrderNumber: orderNumber,
		CancelledAt: cancelledAt,
	}
}

// ProductCreated signals a new product entered the catalog.
type ProductCreated struct {
	Base
	ProductID    int64
	ProductName  string
	PriceCents   int64
	InitialStock int
}

func NewProductCreated(productID int64, productName string, priceCents int64, initialStock int) ProductCreated {
	return ProductCreated{
		Base:         newBase(TypeProductCreated),
		ProductID:    productID,
		ProductName:  productName,
		PriceCents:   priceCents,
		InitialStock: initialStock,
	}
}

// StockUpdated signals a product's stock level changed.
type StockUpdated struct {
	Base
	ProductID     int64
	PreviousStock int
	NewStock      int
	ChangeAmount  int
}

func NewStockUpdated(productID int64, previousStock, newStock int) StockUpdated {
	return StockUpdated{
		Base:          newBase(TypeStockUpdated),
		ProductID:     productID,
		PreviousStock: previousStock,
		NewStock:      newStock,
		ChangeAmount:  newStock - previousStock,
	}
}

// LowStockAlert signals a product dropped below its low stock threshold.
type LowStockAlert struct {
	Base
	ProductID    int64
	ProductName  string
	CurrentStock int
	Threshold    int
}

func NewLowStockAlert(productID int64, productName string, currentStock, threshold int) LowStockAlert {
	return LowStockAlert{
		Base:         newBase(TypeLowStockAlert),
		ProductID:    productID,
		ProductName:  productName,
		CurrentStock: currentStock,
		Threshold:    threshold,
	}
}
