package domain

import "time"

type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Order is the header row. It is written once, together with its lines, and
// never updated afterwards.
type Order struct {
	ID              uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint64      `json:"userId" gorm:"not null;index;uniqueIndex:idx_orders_user_idem,priority:1"`
	TotalAmount     float64     `json:"total" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus `json:"status" gorm:"type:enum('processing','shipped','delivered','cancelled');default:'processing'"`
	ShippingAddress string      `json:"shippingAddress" gorm:"type:text"`
	PaymentMethod   string      `json:"paymentMethod" gorm:"type:varchar(50)"`
	IdempotencyKey  *string     `json:"-" gorm:"type:varchar(255);uniqueIndex:idx_orders_user_idem,priority:2"`
	CreatedAt       time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem keeps the unit price the product had when the order was placed.
type OrderItem struct {
	ID        uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64  `json:"orderId" gorm:"not null;index"`
	ProductID uint64  `json:"productId" gorm:"not null;index"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"type:decimal(10,2);not null"`
}

// OrderLine is one requested line of a new order, before pricing.
type OrderLine struct {
	ProductID uint64
	Quantity  int
}

// NewOrder is everything the order transaction needs to materialize an order.
type NewOrder struct {
	UserID          uint64
	Lines           []OrderLine
	ShippingAddress string
	PaymentMethod   string
	IdempotencyKey  string
}

// MergeLines folds repeated product ids into a single line, keeping the
// order in which products first appear.
func MergeLines(lines []OrderLine) []OrderLine {
	idx := make(map[uint64]int, len(lines))
	out := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		if i, ok := idx[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		idx[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}
