package products

import (
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/dashboard-service/internal/domain/money"
)

// LowStockThreshold is the stock level below which a product is flagged.
const LowStockThreshold = 50

type Product struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Price    money.Amount `json:"price"`
	Stock    int          `json:"stock"`
}

// Key identifies the product inside a snapshot.
func (p Product) Key() string {
	return p.ID
}

// StockValue is price times units in stock.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Decimal().Mul(decimal.NewFromInt(int64(p.Stock)))
}

// LowStock reports whether the product is below LowStockThreshold.
func (p Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}
