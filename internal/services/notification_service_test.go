package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clinichub/clinic-backend/internal/dto"
	"github.com/clinichub/clinic-backend/internal/models"
	"github.com/clinichub/clinic-backend/internal/push"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPushTokenUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, push.NewExpoClient())

	req := &dto.RegisterPushTokenRequest{Token: "ExponentPushToken[abc]", Platform: "ios"}
	require.NoError(t, svc.RegisterPushToken(req))
	require.NoError(t, svc.RegisterPushToken(req))

	var count int64
	require.NoError(t, db.Model(&models.PushToken{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	assert.ErrorIs(t, svc.RegisterPushToken(&dto.RegisterPushTokenRequest{Token: "junk"}), ErrInvalidPushToken)
}

func TestCreateWithPushFansOut(t *testing.T) {
	var received push.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		tickets := make([]map[string]string, len(received.To))
		for i := range tickets {
			tickets[i] = map[string]string{"status": "ok"}
		}
		json.NewEncoder(w).Encode(map[string]any{"data": tickets})
	}))
	defer srv.Close()

	db := newTestDB(t)
	svc := NewNotificationService(db, push.NewExpoClientWithEndpoint(srv.URL))

	require.NoError(t, svc.RegisterPushToken(&dto.RegisterPushTokenRequest{Token: "ExponentPushToken[d1]"}))
	require.NoError(t, svc.RegisterPushToken(&dto.RegisterPushTokenRequest{Token: "ExponentPushToken[d2]"}))

	item, err := svc.Create(context.Background(), &dto.NotificationRequest{
		Title: "New Post", Message: "Check it out", SendPush: true,
	}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "other", item.Type)

	assert.Len(t, received.To, 2)
	assert.Equal(t, "New Post", received.Title)
}

func TestListFiltersExpiredAndScheduled(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, push.NewExpoClient())

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	_, err := svc.Create(context.Background(), &dto.NotificationRequest{
		Title: "Expired", Message: "m", ExpiresAt: &past,
	}, "a")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &dto.NotificationRequest{
		Title: "Scheduled Later", Message: "m", ScheduledFor: &future,
	}, "a")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &dto.NotificationRequest{
		Title: "Visible", Message: "m",
	}, "a")
	require.NoError(t, err)

	items, err := svc.List()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Visible", items[0].Title)
}
