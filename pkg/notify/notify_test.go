package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Drivers(t *testing.T) {
	n, err := New(Config{Driver: "none"})
	require.NoError(t, err)
	assert.ErrorIs(t, n.NotifyPickup(context.Background(), PickupNotice{}), ErrDisabled)

	_, err = New(Config{Driver: "resend"})
	assert.Error(t, err)

	_, err = New(Config{Driver: "smtp"})
	assert.Error(t, err)

	_, err = New(Config{Driver: "pigeon"})
	assert.Error(t, err)

	n, err = New(Config{Driver: "smtp", SMTPHost: "localhost", SMTPPort: 25})
	require.NoError(t, err)
	assert.IsType(t, &smtpNotifier{}, n)
}

func TestPickupNotice(t *testing.T) {
	n := PickupNotice{OrderNumber: "ORD-ABC123"}
	assert.ErrorIs(t, n.Validate(), ErrMissingRecipient)
	assert.Equal(t, "Your Order ORD-ABC123 is Ready for Pickup!", n.Subject())

	n.CustomerEmail = "mariama@example.com"
	assert.NoError(t, n.Validate())
}

func TestRenderPickup_EscapesAndDefaults(t *testing.T) {
	html, err := renderPickup(PickupNotice{OrderNumber: "ORD-1", CustomerEmail: "a@b.c"})
	require.NoError(t, err)
	assert.Contains(t, html, "Dear Valued Customer")
	assert.Contains(t, html, "Order: ORD-1")

	html, err = renderPickup(PickupNotice{OrderNumber: "ORD-2", CustomerName: "<b>Sia</b>", StorePhone: "+232 76 000000"})
	require.NoError(t, err)
	assert.Contains(t, html, "&lt;b&gt;Sia&lt;/b&gt;")
	assert.Contains(t, html, "+232 76 000000")
}

func TestResend_NotifyPickup(t *testing.T) {
	var got map[string]interface{}
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		auth = r.Header.Get("Authorization")
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r.Body)
		_ = json.Unmarshal(buf.Bytes(), &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	n, err := New(Config{Driver: "resend", ResendAPIKey: "re_test", ResendBaseURL: srv.URL, From: "Shop <shop@example.com>"})
	require.NoError(t, err)

	err = n.NotifyPickup(context.Background(), PickupNotice{
		OrderNumber:   "ORD-XYZ",
		CustomerName:  "Mariama",
		CustomerEmail: "mariama@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "Your Order ORD-XYZ is Ready for Pickup!", got["subject"])
	assert.Equal(t, []interface{}{"mariama@example.com"}, got["to"])
	assert.Equal(t, "Shop <shop@example.com>", got["from"])
}

func TestResend_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	n, err := New(Config{Driver: "resend", ResendAPIKey: "re_test", ResendBaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)

	err = n.NotifyPickup(context.Background(), PickupNotice{OrderNumber: "ORD-1", CustomerEmail: "x@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")
}

func TestSMTP_Message(t *testing.T) {
	s := newSMTP(Config{SMTPHost: "localhost", SMTPPort: 25, From: "shop@example.com"})
	m, err := s.message(PickupNotice{OrderNumber: "ORD-9", CustomerEmail: "c@example.com", CustomerName: "Kadiatu"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Your Order ORD-9 is Ready for Pickup!"}, m.GetHeader("Subject"))
	assert.Equal(t, []string{"shop@example.com"}, m.GetHeader("From"))
}
