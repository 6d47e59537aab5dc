package notificationapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudyRoomsService/pkg/logger"
)

func TestClient_SendEmail(t *testing.T) {
	var got NotifyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notify", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-KEY"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "secret", true, time.Second, logger.Nop())

	require.NoError(t, client.SendEmail(context.Background(), "anna@example.com", "Reservation confirmed", "See you"))
	assert.Equal(t, ChannelEmail, got.Channel)
	assert.Equal(t, "anna@example.com", got.Recipient)
	require.NotNil(t, got.Subject)
	assert.Equal(t, "Reservation confirmed", *got.Subject)
}

func TestClient_SendSMS_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Nil(t, payload["subject"])
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "wrong", true, time.Second, logger.Nop())

	err := client.SendSMS(context.Background(), "+306900000000", "Cancelled")
	assert.ErrorIs(t, err, ErrRejected)
}

func TestClient_Disabled(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", false, time.Second, logger.Nop())

	require.NoError(t, client.SendEmail(context.Background(), "anna@example.com", "s", "b"))
	require.NoError(t, client.SendSMS(context.Background(), "+30", "m"))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "secret", true, 200*time.Millisecond, logger.Nop())

	err := client.SendEmail(context.Background(), "anna@example.com", "s", "b")
	assert.ErrorIs(t, err, ErrInternal)
}
