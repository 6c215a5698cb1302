package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationStore struct {
	created   []models.Notification
	createErr error
}

func (f *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationStore) ListForUser(_ context.Context, userID string, _ bool) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, _, _ string) error { return nil }
func (f *fakeNotificationStore) Archive(_ context.Context, _, _ string) error  { return nil }

type fakePusher struct {
	sent []string
}

func (f *fakePusher) SendToUser(userID string, _ interface{}) bool {
	f.sent = append(f.sent, userID)
	return true
}

func TestEmit_StoresAndPushes(t *testing.T) {
	store := &fakeNotificationStore{}
	pusher := &fakePusher{}
	emitter := NewEmitter(store, pusher)

	emitter.Emit(context.Background(), "user-1", models.NotificationSuccess,
		"Document approved", "Your medical prescription was approved.",
		map[string]interface{}{"documentType": "medical_prescription"})

	require.Len(t, store.created, 1)
	n := store.created[0]
	assert.Equal(t, "user-1", n.UserID)
	assert.Equal(t, models.NotificationSuccess, n.Type)
	assert.False(t, n.Read, "notifications start unread")
	assert.False(t, n.Archived)
	assert.Contains(t, string(n.Data), "medical_prescription")

	assert.Equal(t, []string{"user-1"}, pusher.sent)
}

func TestEmit_StoreFailureIsSwallowed(t *testing.T) {
	store := &fakeNotificationStore{createErr: errors.New("db down")}
	pusher := &fakePusher{}
	emitter := NewEmitter(store, pusher)

	// Must not panic and must not push what was never stored
	emitter.Emit(context.Background(), "user-1", models.NotificationInfo, "Order placed", "msg", nil)

	assert.Empty(t, pusher.sent)
}

func TestEmit_NilPusher(t *testing.T) {
	store := &fakeNotificationStore{}
	emitter := NewEmitter(store, nil)

	emitter.Emit(context.Background(), "user-1", models.NotificationInfo, "Order placed", "msg", nil)

	require.Len(t, store.created, 1)
}
