// Package orders owns the order lifecycle: atomic creation from a cart
// snapshot, admin-driven status transitions, and the payment proof
// side-channel.
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/passionatedev1128/everwell-sub001/internal/apperr"
	"github.com/passionatedev1128/everwell-sub001/internal/authz"
	"github.com/passionatedev1128/everwell-sub001/internal/cart"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"github.com/passionatedev1128/everwell-sub001/internal/storage"
)

// Store is the persistence contract for orders
type Store interface {
	// CreateOrder persists the order with its lines in one transaction.
	CreateOrder(ctx context.Context, order *models.Order) error
	// GetOrder returns the order with lines and payment proof preloaded,
	// or a NotFound error.
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListForUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	// SavePaymentProof upserts the single proof slot for the order.
	SavePaymentProof(ctx context.Context, proof *models.PaymentProof) error
	// DocumentsForUser feeds the authorization gate at checkout.
	DocumentsForUser(ctx context.Context, userID string) ([]models.DocumentRecord, error)
}

// Notifier is satisfied by notify.Emitter
type Notifier interface {
	Emit(ctx context.Context, userID string, typ models.NotificationType, title, message string, data map[string]interface{})
}

// Service drives the order state machine
type Service struct {
	store  Store
	files  storage.FileStore
	notify Notifier
}

// NewService wires the order workflow
func NewService(store Store, files storage.FileStore, notifier Notifier) *Service {
	return &Service{store: store, files: files, notify: notifier}
}

// Create turns a cart snapshot into a durable order. Lines and total are
// frozen here and never recomputed. The caller clears the session cart
// only after this returns successfully; on any error the cart stays
// intact, which is the one all-or-nothing boundary in the workflow.
func (s *Service) Create(ctx context.Context, userID string, lines []cart.Line, addr models.ShippingAddress) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, apperr.EmptyCart("your cart is empty")
	}

	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, apperr.ValidationFailed("line quantity must be at least 1")
		}
	}

	if hasRestricted(lines) {
		docs, err := s.store.DocumentsForUser(ctx, userID)
		if err != nil {
			return nil, apperr.Internal("failed to load document records", err)
		}
		if !authz.IsAuthorized(docs) {
			return nil, apperr.NotAuthorized("your documents are still pending approval")
		}
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		ShippingAddress: addr,
	}
	for _, l := range lines {
		order.Lines = append(order.Lines, models.OrderLine{
			ProductID:      l.ProductID,
			Name:           l.Name,
			Slug:           l.Slug,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       l.Quantity,
		})
		order.TotalCents += l.SubtotalCents()
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, apperr.Internal("failed to create order", err)
	}

	s.notify.Emit(ctx, userID, models.NotificationInfo, "Order placed",
		fmt.Sprintf("Order %s was created. Upload your payment proof to continue.", order.OrderNumber),
		map[string]interface{}{"orderId": order.ID, "orderNumber": order.OrderNumber})

	return order, nil
}

// Get returns an order. Customers only see their own orders; an order
// belonging to someone else reads as not found rather than forbidden.
func (s *Service) Get(ctx context.Context, callerID string, isAdmin bool, orderID string) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != callerID {
		return nil, apperr.NotFound("order not found")
	}
	return order, nil
}

// ListForUser returns the caller's orders, newest first
func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.store.ListForUser(ctx, userID)
}

// ListAll returns every order for the admin dashboard
func (s *Service) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.store.ListAll(ctx)
}

// UpdateStatus moves the order along a legal edge. Admin-only (enforced at
// the transport layer). Terminal states reject every edge. Every applied
// change emits a notification describing old -> new.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, apperr.ValidationFailed(fmt.Sprintf("unknown order status %q", next))
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	prev := order.Status
	if !prev.CanTransitionTo(next) {
		return nil, apperr.InvalidTransition(
			fmt.Sprintf("order cannot move from %s to %s", prev, next))
	}

	if err := s.store.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, apperr.Internal("failed to update order status", err)
	}
	order.Status = next

	s.emitStatusChange(ctx, order, prev, next)
	return order, nil
}

// AttachPaymentProof validates and stores a proof file for the caller's
// order, replacing any prior proof. Allowed only while the order is
// pending or paid; attaching never advances the order status itself.
func (s *Service) AttachPaymentProof(ctx context.Context, userID, orderID string, up storage.Upload) (*models.PaymentProof, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperr.NotFound("order not found")
	}
	if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusPaid {
		return nil, apperr.InvalidTransition(
			fmt.Sprintf("payment proof cannot be attached while the order is %s", order.Status))
	}

	if err := storage.Validate(up, storage.PaymentProofMIMETypes); err != nil {
		return nil, err
	}

	url, err := s.files.Save(ctx, "payment-proofs", up.Filename, up.Content)
	if err != nil {
		return nil, apperr.Internal("failed to store payment proof", err)
	}

	proof := order.PaymentProof
	if proof == nil {
		proof = &models.PaymentProof{OrderID: order.ID}
	}
	proof.URL = url
	proof.FileType = proofType(up.ContentType)
	proof.UploadedAt = time.Now().UTC()

	if err := s.store.SavePaymentProof(ctx, proof); err != nil {
		return nil, apperr.Internal("failed to save payment proof", err)
	}
	return proof, nil
}

func (s *Service) emitStatusChange(ctx context.Context, order *models.Order, prev, next models.OrderStatus) {
	typ := models.NotificationInfo
	switch next {
	case models.OrderStatusPaid, models.OrderStatusDelivered:
		typ = models.NotificationSuccess
	case models.OrderStatusCancelled:
		typ = models.NotificationWarning
	}

	s.notify.Emit(ctx, order.UserID, typ, "Order update",
		fmt.Sprintf("Order %s moved from %s to %s.", order.OrderNumber, statusLabel(prev), statusLabel(next)),
		map[string]interface{}{
			"orderId":     order.ID,
			"orderNumber": order.OrderNumber,
			"from":        prev,
			"to":          next,
		})
}

func statusLabel(s models.OrderStatus) string {
	return strings.ReplaceAll(string(s), "_", " ")
}

func proofType(contentType string) models.PaymentProofType {
	if strings.HasPrefix(strings.ToLower(contentType), "application/pdf") {
		return models.PaymentProofPDF
	}
	return models.PaymentProofImage
}

func hasRestricted(lines []cart.Line) bool {
	for _, l := range lines {
		if l.Restricted {
			return true
		}
	}
	return false
}
