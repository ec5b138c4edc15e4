package notifiers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ilindan-dev/notify-relay/internal/config"
	"github.com/ilindan-dev/notify-relay/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTelegramAPI answers getMe during bot construction and records
// sendMessage calls.
func fakeTelegramAPI(t *testing.T, sent *[]map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"relay","username":"relay_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			require.NoError(t, r.ParseForm())
			fields := map[string]string{}
			for key := range r.PostForm {
				fields[key] = r.PostForm.Get(key)
			}
			*sent = append(*sent, fields)
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
		default:
			t.Errorf("unexpected telegram call: %s", r.URL.Path)
		}
	}))
}

func TestTelegramSend_HTMLMessageWithoutPreview(t *testing.T) {
	var sent []map[string]string
	srv := fakeTelegramAPI(t, &sent)
	defer srv.Close()

	log := zerolog.Nop()
	n, err := newTelegramNotifier([]config.TelegramAccount{{APIKey: "token", UserID: 42}}, srv.URL+"/bot%s/%s", &log)
	require.NoError(t, err)

	err = n.Send(context.Background(), model.NewNotification("Subject", "Body", "https://example.com", "0", nil))

	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "<strong>Subject</strong>\nBody\n\nhttps://example.com", sent[0]["text"])
	assert.Equal(t, "HTML", sent[0]["parse_mode"])
	assert.Equal(t, "true", sent[0]["disable_web_page_preview"])
	assert.Equal(t, "42", sent[0]["chat_id"])
}

func TestTelegramSend_OneMessagePerAccount(t *testing.T) {
	var sent []map[string]string
	srv := fakeTelegramAPI(t, &sent)
	defer srv.Close()

	log := zerolog.Nop()
	n, err := newTelegramNotifier([]config.TelegramAccount{
		{APIKey: "token-a", UserID: 1},
		{APIKey: "token-b", UserID: 2},
	}, srv.URL+"/bot%s/%s", &log)
	require.NoError(t, err)

	err = n.Send(context.Background(), model.NewNotification("s", "m", "", "0", nil))

	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, "1", sent[0]["chat_id"])
	assert.Equal(t, "2", sent[1]["chat_id"])
}
