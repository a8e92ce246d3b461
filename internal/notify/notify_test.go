package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/storage"
)

func doseNotification() *model.Notification {
	return model.NewNotification(
		model.NotifyDose,
		"Time for your medicine",
		"Aspirin is due now.",
	).WithField("Dosage", "100mg").WithField("Time", "9:00 AM")
}

func TestDiscordFormatter(t *testing.T) {
	f := &DiscordFormatter{}
	payload, err := f.Format(doseNotification())
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &parsed))

	embeds, ok := parsed["embeds"].([]interface{})
	require.True(t, ok)
	require.Len(t, embeds, 1)

	embed := embeds[0].(map[string]interface{})
	assert.Equal(t, "Time for your medicine", embed["title"])
	assert.Equal(t, "Aspirin is due now.", embed["description"])

	footer := embed["footer"].(map[string]interface{})
	assert.Equal(t, "Dosewatch", footer["text"])

	fields := embed["fields"].([]interface{})
	assert.Len(t, fields, 2)
}

func TestSlackFormatter(t *testing.T) {
	f := &SlackFormatter{}
	payload, err := f.Format(doseNotification())
	require.NoError(t, err)

	var parsed slackPayload
	require.NoError(t, json.Unmarshal(payload, &parsed))

	assert.Contains(t, parsed.Text, "Time for your medicine")
	require.GreaterOrEqual(t, len(parsed.Blocks), 2)
	assert.Equal(t, "header", parsed.Blocks[0].Type)
	assert.Equal(t, "Time for your medicine", parsed.Blocks[0].Text.Text)
}

func TestGenericFormatter(t *testing.T) {
	f := &GenericFormatter{}
	payload, err := f.Format(doseNotification())
	require.NoError(t, err)

	var parsed genericPayload
	require.NoError(t, json.Unmarshal(payload, &parsed))

	assert.Equal(t, "dose", parsed.Type)
	assert.Equal(t, "Time for your medicine", parsed.Title)
	assert.Equal(t, "100mg", parsed.Fields["Dosage"])
}

func TestGenericFormatterWithTemplate(t *testing.T) {
	f := &GenericFormatter{Template: `{"msg": "{{.Title}}: {{.Message}}"}`}
	payload, err := f.Format(doseNotification())
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal(payload, &parsed))
	assert.Equal(t, "Time for your medicine: Aspirin is due now.", parsed["msg"])
}

func TestGetFormatter(t *testing.T) {
	assert.IsType(t, &DiscordFormatter{}, GetFormatter(model.WebhookTypeDiscord))
	assert.IsType(t, &SlackFormatter{}, GetFormatter(model.WebhookTypeSlack))
	assert.IsType(t, &GenericFormatter{}, GetFormatter(model.WebhookTypeGeneric))
	assert.IsType(t, &GenericFormatter{}, GetFormatter("unknown"))
}

func TestDispatcherSend(t *testing.T) {
	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Dosewatch/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()

	repo := storage.NewWebhookRepo(db)
	require.NoError(t, repo.Create(model.NewWebhook("first", model.WebhookTypeGeneric, server.URL)))
	require.NoError(t, repo.Create(model.NewWebhook("second", model.WebhookTypeDiscord, server.URL)))

	d := NewDispatcher(repo)
	require.True(t, d.HasEnabledChannels())

	results := d.Send(context.Background(), doseNotification())
	require.Len(t, results, 2)
	for _, res := range results {
		assert.True(t, res.Success, "webhook %s failed: %v", res.WebhookName, res.Error)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}
	assert.Equal(t, int32(2), received.Load())

	// Successful sends clear the last error.
	wh, err := repo.Get("first")
	require.NoError(t, err)
	assert.Empty(t, wh.LastError)
	assert.False(t, wh.LastUsed.IsZero())
}

func TestDispatcherSkipsDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()

	repo := storage.NewWebhookRepo(db)
	require.NoError(t, repo.Create(model.NewWebhook("off", model.WebhookTypeGeneric, server.URL)))
	require.NoError(t, repo.SetEnabled("off", false))

	d := NewDispatcher(repo)
	assert.False(t, d.HasEnabledChannels())
	assert.Nil(t, d.Send(context.Background(), doseNotification()))
}

func TestDispatcherClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()

	repo := storage.NewWebhookRepo(db)
	require.NoError(t, repo.Create(model.NewWebhook("bad", model.WebhookTypeGeneric, server.URL)))

	d := NewDispatcher(repo)
	results := d.Send(context.Background(), doseNotification())
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, http.StatusBadRequest, results[0].StatusCode)

	wh, err := repo.Get("bad")
	require.NoError(t, err)
	assert.NotEmpty(t, wh.LastError)
}
