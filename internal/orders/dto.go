package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/ssemujju/sokoyetu-backend/pkg/enums"
)

// Filters describe the inputs supported by the order queries. VendorID
// restricts results to orders containing at least one of that vendor's
// products; the full order (all vendors' items) is still returned so
// attribution can split it downstream.
type Filters struct {
	Statuses        []enums.OrderStatus
	ExcludeStatuses []enums.OrderStatus
	VendorID        *uuid.UUID
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
