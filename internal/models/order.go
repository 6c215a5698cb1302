package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderStatus defines possible order statuses
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Created, awaiting payment
	OrderStatusPaid       OrderStatus = "paid"       // Payment confirmed by admin
	OrderStatusProcessing OrderStatus = "processing" // Being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Handed to carrier
	OrderStatusDelivered  OrderStatus = "delivered"  // Terminal
	OrderStatusCancelled  OrderStatus = "cancelled"  // Terminal
)

// orderTransitions is the full legal edge set. Terminal states have no
// outgoing edges.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are accepted
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether s -> next is a legal edge
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// ShippingAddress is frozen into the order at checkout
type ShippingAddress struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// Order is the durable, server-owned record of a purchase. Lines and
// TotalCents are frozen at creation and never recomputed from the live
// catalog. Orders are never deleted; cancellation is a terminal status.
type Order struct {
	ID          string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null" json:"orderNumber"`
	UserID      string      `gorm:"type:uuid;not null;index" json:"userId"`
	Status      OrderStatus `gorm:"default:'pending';index" json:"status"`
	TotalCents  int64       `gorm:"not null" json:"totalCents"`

	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	Metadata        datatypes.JSON  `json:"metadata,omitempty"`

	Lines        []OrderLine   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	PaymentProof *PaymentProof `gorm:"foreignKey:OrderID" json:"paymentProof,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate generates the human-readable order number
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		o.OrderNumber = generateOrderNumber("EW")
	}
	return nil
}

// generateOrderNumber creates a unique order number, e.g. EW20260829-A1B2C3
func generateOrderNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return prefix + time.Now().Format("20060102") + "-" + suffix
}

// OrderLine is a price-frozen copy of a cart line
type OrderLine struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	OrderID        string `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID      string `gorm:"type:uuid;not null" json:"productId"`
	Name           string `gorm:"not null" json:"name"`
	Slug           string `json:"slug"`
	UnitPriceCents int64  `gorm:"not null" json:"unitPriceCents"`
	Quantity       int    `gorm:"not null" json:"quantity"`
}

// TableName specifies the table name for OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// SubtotalCents returns unit price times quantity
func (l OrderLine) SubtotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// PaymentProofType distinguishes image and PDF proofs
type PaymentProofType string

const (
	PaymentProofImage PaymentProofType = "image"
	PaymentProofPDF   PaymentProofType = "pdf"
)

// PaymentProof is the single current proof slot for an order.
// Re-uploads overwrite the previous proof; there is no history list.
type PaymentProof struct {
	ID         string           `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	OrderID    string           `gorm:"type:uuid;uniqueIndex;not null" json:"orderId"`
	URL        string           `gorm:"not null" json:"url"`
	FileType   PaymentProofType `gorm:"not null" json:"fileType"`
	UploadedAt time.Time        `json:"uploadedAt"`
}

// TableName specifies the table name for PaymentProof model
func (PaymentProof) TableName() string {
	return "payment_proofs"
}
