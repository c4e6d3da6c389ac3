package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ssemujju/sokoyetu-backend/pkg/db/models"
)

// VendorItems returns the subset of an order's line items belonging to the
// target vendor, plus their price×quantity sum. The order is not mutated;
// repeated calls across vendors partition the full item set with no item
// counted twice or dropped, since each product has exactly one owner.
func VendorItems(order models.Order, vendorID uuid.UUID) ([]models.OrderItem, decimal.Decimal) {
	var items []models.OrderItem
	total := decimal.Zero
	for _, item := range order.Items {
		if item.VendorID() != vendorID {
			continue
		}
		items = append(items, item)
		total = total.Add(item.Subtotal())
	}
	return items, total
}

// VendorIDs lists the distinct vendors present in an order, in order of
// first appearance. Items with an unresolved product association are skipped.
func VendorIDs(order models.Order) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(order.Items))
	var ids []uuid.UUID
	for _, item := range order.Items {
		id := item.VendorID()
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
