package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ssemujju/sokoyetu-backend/pkg/db/models"
	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func testSeller(name string) models.User {
	business := name + " Traders"
	return models.User{
		ID:           uuid.New(),
		Email:        name + "@example.ug",
		Name:         name,
		BusinessName: &business,
		Role:         enums.UserRoleSeller,
		IsActive:     true,
		IsVerified:   true,
	}
}

type lineSpec struct {
	vendorID uuid.UUID
	price    string
	qty      int
}

func testOrder(status enums.OrderStatus, createdAt time.Time, lines ...lineSpec) models.Order {
	order := models.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     status,
		CreatedAt:  createdAt,
	}
	total := decimal.Zero
	for _, line := range lines {
		item := models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: uuid.New(),
			Price:     d(line.price),
			Quantity:  line.qty,
		}
		item.Product = &models.Product{
			ID:       item.ProductID,
			VendorID: line.vendorID,
			Name:     "product-" + item.ProductID.String()[:8],
			Price:    item.Price,
			IsActive: true,
		}
		order.Items = append(order.Items, item)
		total = total.Add(item.Subtotal())
	}
	order.Total = total
	return order
}

func testRefund(orderID uuid.UUID, amount string, status enums.RefundStatus, createdAt time.Time) models.Refund {
	return models.Refund{
		ID:        uuid.New(),
		OrderID:   orderID,
		Amount:    d(amount),
		Status:    status,
		Reason:    "damaged on arrival",
		CreatedAt: createdAt,
	}
}
