package notifications

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"super_sheets/internal/recorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleResult = &recorder.Result{
	Date:            "2017-9-8",
	Total:           "$1,100.00",
	AustralianSuper: "$600.00",
	Transaction:     "$100.00",
	Shares:          "$200.00",
	HighGrowth:      "$300.00",
}

func TestSendNotification(t *testing.T) {
	var gotPath, gotBody, gotPriority string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPriority = r.Header.Get("Priority")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "balances", true, "high")
	require.NoError(t, c.SendNotification(context.Background(), "hello"))

	assert.Equal(t, "/balances", gotPath)
	assert.Equal(t, "hello", gotBody)
	assert.Equal(t, "high", gotPriority)
}

func TestSendNotificationDisabled(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "balances", false, "")
	require.NoError(t, c.SendNotification(context.Background(), "hello"))
	assert.False(t, called)
}

func TestSendNotificationHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "balances", true, "").SendNotification(context.Background(), "hello")
	var notifErr *NotificationError
	require.True(t, errors.As(err, &notifErr))
	assert.Equal(t, "rate_limit", notifErr.Type)
	assert.Equal(t, http.StatusTooManyRequests, notifErr.StatusCode)
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t,
		"2017-9-8 total: $1,100.00\nAustralianSuper: $600.00\nTransaction: $100.00\nShares: $200.00\nHigh Growth: $300.00",
		FormatResult(sampleResult))
}

func TestNotifyRecorded(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer srv.Close()

	NewClient(srv.URL, "balances", true, "").NotifyRecorded(context.Background(), sampleResult)
	assert.Equal(t, FormatResult(sampleResult), gotBody)
}
