package notifiers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGotifySend_FormFieldsAndToken(t *testing.T) {
	var gotPath, gotToken, gotTitle, gotMessage, gotPriority string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("token")
		gotTitle = r.PostForm.Get("title")
		gotMessage = r.PostForm.Get("message")
		gotPriority = r.PostForm.Get("priority")
	}))
	defer srv.Close()

	log := zerolog.Nop()
	n := NewGotifyNotifier([]config.GotifyAccount{{URL: srv.URL, Token: "apptoken"}}, srv.Client(), &log)

	err := n.Send(context.Background(), model.NewNotification("Subject", "Body", "https://example.com", "5", nil))

	require.NoError(t, err)
	assert.Equal(t, "/message", gotPath)
	assert.Equal(t, "apptoken", gotToken)
	assert.Equal(t, "Subject", gotTitle)
	assert.Equal(t, "Body\n\nhttps://example.com", gotMessage)
	assert.Equal(t, "5", gotPriority)
}
