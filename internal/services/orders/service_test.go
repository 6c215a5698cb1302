package orders

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/passionatedev1128/everwell-sub001/internal/apperr"
	"github.com/passionatedev1128/everwell-sub001/internal/cart"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"github.com/passionatedev1128/everwell-sub001/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	orders  map[string]*models.Order
	docs    map[string][]models.DocumentRecord
	nextID  int
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders: make(map[string]*models.Order),
		docs:   make(map[string][]models.DocumentRecord),
	}
}

func (f *fakeStore) CreateOrder(_ context.Context, order *models.Order) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.nextID++
	order.ID = fmt.Sprintf("order-%d", f.nextID)
	if order.OrderNumber == "" {
		order.OrderNumber = fmt.Sprintf("EW20260101-%06d", f.nextID)
	}
	order.CreatedAt = time.Now().UTC()
	f.orders[order.ID] = order
	return nil
}

func (f *fakeStore) GetOrder(_ context.Context, id string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, apperr.NotFound("order not found")
	}
	copied := *order
	return &copied, nil
}

func (f *fakeStore) ListForUser(_ context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, orderID string, status models.OrderStatus) error {
	order, ok := f.orders[orderID]
	if !ok {
		return apperr.NotFound("order not found")
	}
	order.Status = status
	return nil
}

func (f *fakeStore) SavePaymentProof(_ context.Context, proof *models.PaymentProof) error {
	order, ok := f.orders[proof.OrderID]
	if !ok {
		return apperr.NotFound("order not found")
	}
	copied := *proof
	order.PaymentProof = &copied
	return nil
}

func (f *fakeStore) DocumentsForUser(_ context.Context, userID string) ([]models.DocumentRecord, error) {
	return f.docs[userID], nil
}

func (f *fakeStore) authorize(userID string) {
	var docs []models.DocumentRecord
	for _, dt := range models.RequiredDocumentTypes {
		docs = append(docs, models.DocumentRecord{
			UserID: userID, Type: dt, Status: models.DocumentStatusApproved,
		})
	}
	f.docs[userID] = docs
}

type fakeFiles struct {
	saves int
}

func (f *fakeFiles) Save(_ context.Context, folder, filename string, _ io.Reader) (string, error) {
	f.saves++
	return fmt.Sprintf("/uploads/%s/%d_%s", folder, f.saves, filename), nil
}

type recordingNotifier struct {
	emitted []models.Notification
}

func (r *recordingNotifier) Emit(_ context.Context, userID string, typ models.NotificationType, title, message string, _ map[string]interface{}) {
	r.emitted = append(r.emitted, models.Notification{
		UserID: userID, Type: typ, Title: title, Message: message,
	})
}

func newTestService() (*Service, *fakeStore, *recordingNotifier) {
	store := newFakeStore()
	notifier := &recordingNotifier{}
	svc := NewService(store, &fakeFiles{}, notifier)
	return svc, store, notifier
}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		Street: "Rua Augusta", Number: "100", District: "Consolacao",
		City: "Sao Paulo", State: "SP", PostalCode: "01304-000",
	}
}

func restrictedLines() []cart.Line {
	return []cart.Line{
		{ProductID: "prod-1", Name: "CBD Oil 10%", Slug: "cbd-oil-10", UnitPriceCents: 18900, Quantity: 2, Restricted: true},
		{ProductID: "prod-2", Name: "Hemp Balm", Slug: "hemp-balm", UnitPriceCents: 4500, Quantity: 1},
	}
}

func imageUpload() storage.Upload {
	return storage.Upload{
		Filename:    "pix-receipt.png",
		ContentType: "image/png",
		Size:        4096,
		Content:     strings.NewReader("png"),
	}
}

func TestCreate_EmptyCart(t *testing.T) {
	svc, store, notifier := newTestService()

	_, err := svc.Create(context.Background(), "user-1", nil, testAddress())
	require.Error(t, err)
	assert.Equal(t, apperr.KindEmptyCart, apperr.KindOf(err))
	assert.Empty(t, store.orders)
	assert.Empty(t, notifier.emitted)
}

func TestCreate_RestrictedLinesRequireAuthorization(t *testing.T) {
	svc, store, notifier := newTestService()

	_, err := svc.Create(context.Background(), "user-1", restrictedLines(), testAddress())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotAuthorized, apperr.KindOf(err))
	assert.Empty(t, store.orders, "gate failure must not persist anything")
	assert.Empty(t, notifier.emitted)
}

func TestCreate_UnrestrictedLinesSkipTheGate(t *testing.T) {
	svc, _, _ := newTestService()

	lines := []cart.Line{
		{ProductID: "prod-2", Name: "Hemp Balm", Slug: "hemp-balm", UnitPriceCents: 4500, Quantity: 2},
	}
	order, err := svc.Create(context.Background(), "user-1", lines, testAddress())
	require.NoError(t, err)
	assert.Equal(t, int64(9000), order.TotalCents)
}

func TestCreate_FreezesLinesAndTotal(t *testing.T) {
	svc, store, notifier := newTestService()
	store.authorize("user-1")

	lines := restrictedLines()
	order, err := svc.Create(context.Background(), "user-1", lines, testAddress())
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2*18900+4500), order.TotalCents)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, "CBD Oil 10%", order.Lines[0].Name)
	assert.Equal(t, int64(18900), order.Lines[0].UnitPriceCents)

	// Later catalog changes must not reach the stored order
	lines[0].UnitPriceCents = 99900
	lines[0].Name = "renamed"
	stored := store.orders[order.ID]
	assert.Equal(t, int64(18900), stored.Lines[0].UnitPriceCents)
	assert.Equal(t, "CBD Oil 10%", stored.Lines[0].Name)

	require.Len(t, notifier.emitted, 1)
	assert.Equal(t, models.NotificationInfo, notifier.emitted[0].Type)
}

func TestCreate_RejectsZeroQuantity(t *testing.T) {
	svc, _, _ := newTestService()

	lines := []cart.Line{{ProductID: "prod-2", Name: "Hemp Balm", UnitPriceCents: 4500, Quantity: 0}}
	_, err := svc.Create(context.Background(), "user-1", lines, testAddress())
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
}

func TestGet_OwnershipReadsAsNotFound(t *testing.T) {
	svc, store, _ := newTestService()
	store.authorize("user-1")

	order, err := svc.Create(context.Background(), "user-1", restrictedLines(), testAddress())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "user-2", false, order.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "foreign orders must not leak as forbidden")

	got, err := svc.Get(context.Background(), "user-2", true, order.ID)
	require.NoError(t, err, "admins see every order")
	assert.Equal(t, order.ID, got.ID)
}

func TestUpdateStatus_WalksTheHappyPath(t *testing.T) {
	svc, store, notifier := newTestService()
	store.authorize("user-1")

	order, err := svc.Create(context.Background(), "user-1", restrictedLines(), testAddress())
	require.NoError(t, err)
	placed := len(notifier.emitted)

	path := []models.OrderStatus{
		models.OrderStatusPaid, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
	}
	for _, next := range path {
		updated, err := svc.UpdateStatus(context.Background(), order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	assert.Equal(t, models.OrderStatusDelivered, store.orders[order.ID].Status)
	assert.Len(t, notifier.emitted, placed+len(path), "one notification per applied transition")

	last := notifier.emitted[len(notifier.emitted)-1]
	assert.Equal(t, models.NotificationSuccess, last.Type)
	assert.Contains(t, last.Message, "delivered")
}

func TestUpdateStatus_IllegalEdges(t *testing.T) {
	svc, store, notifier := newTestService()
	store.authorize("user-1")

	order, err := svc.Create(context.Background(), "user-1", restrictedLines(), testAddress())
	require.NoError(t, err)
	placed := len(notifier.emitted)

	cases := []struct {
		prep models.OrderStatus
		next models.OrderStatus
	}{
		{models.OrderStatusPending, models.OrderStatusShipped},
		{models.OrderStatusProcessing, models.OrderStatusCancelled},
		{models.OrderStatusDelivered, models.OrderStatusProcessing},
		{models.OrderStatusCancelled, models.OrderStatusPaid},
	}
	for _, tc := range cases {
		store.orders[order.ID].Status = tc.prep
		_, err := svc.UpdateStatus(context.Background(), order.ID, tc.next)
		require.Error(t, err, "%s -> %s should be rejected", tc.prep, tc.next)
		assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
		assert.Equal(t, tc.prep, store.orders[order.ID].Status, "rejected edge must not move the order")
	}

	assert.Len(t, notifier.emitted, placed, "rejected edges must not notify")
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), "order-1", models.OrderStatus("refunded"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
}

func TestAttachPaymentProof_StoresAndOverwrites(t *testing.T) {
	svc, store, _ := newTestService()
	store.authorize("user-1")

	order, err := svc.Create(context.Background(), "user-1", restrictedLines(), testAddress())
	require.NoError(t, err)

	proof, err := svc.AttachPaymentProof(context.Background(), "user-1", order.ID, imageUpload())
	require.NoError(t, err)
	assert.Equal(t, models.PaymentProofImage, proof.FileType)
	firstURL := proof.URL

	// Second upload replaces the single proof slot
	up := imageUpload()
	up.Filename = "receipt.pdf"
	up.ContentType = "application/pdf"
	proof, err = svc.AttachPaymentProof(context.Background(), "user-1", order.ID, up)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentProofPDF, proof.FileType)
	assert.NotEqual(t, firstURL, proof.URL)

	stored := store.orders[order.ID].PaymentProof
	require.NotNil(t, stored)
	assert.Equal(t, proof.URL, stored.URL)
	assert.Equal(t, models.OrderStatusPending, store.orders[order.ID].Status,
		"attaching a proof must not advance the order")
}

func TestAttachPaymentProof_ForeignOrder(t *testing.T) {
	svc, store, _ := newTestService()
	store.authorize("user-1")

	order, err := svc.Create(context.Background(), "user-1", restrictedLines(), testAddress())
	require.NoError(t, err)

	_, err = svc.AttachPaymentProof(context.Background(), "user-2", order.ID, imageUpload())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAttachPaymentProof_RejectedAfterShipping(t *testing.T) {
	svc, store, _ := newTestService()
	store.authorize("user-1")

	order, err := svc.Create(context.Background(), "user-1", restrictedLines(), testAddress())
	require.NoError(t, err)

	for _, status := range []models.OrderStatus{
		models.OrderStatusProcessing, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled,
	} {
		store.orders[order.ID].Status = status
		_, err := svc.AttachPaymentProof(context.Background(), "user-1", order.ID, imageUpload())
		require.Error(t, err, "proof on a %s order should be rejected", status)
		assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
	}
}

func TestAttachPaymentProof_RejectsBadFiles(t *testing.T) {
	svc, store, _ := newTestService()
	store.authorize("user-1")

	order, err := svc.Create(context.Background(), "user-1", restrictedLines(), testAddress())
	require.NoError(t, err)

	up := imageUpload()
	up.ContentType = "application/msword"
	_, err = svc.AttachPaymentProof(context.Background(), "user-1", order.ID, up)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err),
		"word documents are valid documents but not valid payment proofs")
	assert.Nil(t, store.orders[order.ID].PaymentProof)
}
