package notifiers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNtfyShSend_PlainBodyAndHeaders(t *testing.T) {
	var gotPath, gotBody, gotTitle, gotClick, gotPriority string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotTitle = r.Header.Get("Title")
		gotClick = r.Header.Get("Click")
		gotPriority = r.Header.Get("Priority")
	}))
	defer srv.Close()

	log := zerolog.Nop()
	n := NewNtfyShNotifier([]config.NtfyShAccount{{Topic: "alerts"}}, srv.Client(), &log)
	n.server = srv.URL

	err := n.Send(context.Background(), model.NewNotification("Subject", "Body", "https://example.com", "3", nil))

	require.NoError(t, err)
	assert.Equal(t, "/alerts", gotPath)
	assert.Equal(t, "Body", gotBody)
	assert.Equal(t, "Subject", gotTitle)
	assert.Equal(t, "https://example.com", gotClick)
	assert.Equal(t, "3", gotPriority)
}

func TestNtfyShSend_OptionalHeadersOmitted(t *testing.T) {
	var hasTitle, hasClick, hasPriority bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasTitle = r.Header["Title"]
		_, hasClick = r.Header["Click"]
		_, hasPriority = r.Header["Priority"]
	}))
	defer srv.Close()

	log := zerolog.Nop()
	n := NewNtfyShNotifier([]config.NtfyShAccount{{Topic: "alerts"}}, srv.Client(), &log)
	n.server = srv.URL

	err := n.Send(context.Background(), model.NewNotification("", "Body", "", "", nil))

	require.NoError(t, err)
	assert.False(t, hasTitle)
	assert.False(t, hasClick)
	assert.False(t, hasPriority)
}
