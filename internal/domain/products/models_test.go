package products

import "testing"

func TestStockValueAndLowStock(t *testing.T) {
	p := Product{Price: "2.50", Stock: 10}
	if got := p.StockValue().StringFixed(2); got != "25.00" {
		t.Fatalf("expected 25.00, got %s", got)
	}
	if !p.LowStock() {
		t.Fatalf("expected 10 units to be low stock")
	}
	p.Stock = LowStockThreshold
	if p.LowStock() {
		t.Fatalf("expected threshold itself not to be low stock")
	}
}
