package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedicineName(t *testing.T) {
	assert.NoError(t, MedicineName("Aspirin"))
	assert.Error(t, MedicineName(""))
	assert.Error(t, MedicineName("   "))
	assert.Error(t, MedicineName(strings.Repeat("x", 129)))
}

func TestDosage(t *testing.T) {
	assert.NoError(t, Dosage("100mg"))
	assert.Error(t, Dosage(""))
}

func TestClockTimes(t *testing.T) {
	assert.NoError(t, ClockTimes([]string{"09:00", "21:00"}))
	assert.Error(t, ClockTimes(nil))
	assert.Error(t, ClockTimes([]string{"09:00", "9:00"}), "normalized duplicate")
	assert.Error(t, ClockTimes([]string{"25:00"}))
}

func TestDate(t *testing.T) {
	assert.NoError(t, Date(""))
	assert.NoError(t, Date("2026-08-29"))
	assert.NoError(t, Date("tomorrow"))
	assert.Error(t, Date("garbage input xyzzy qwerty"))
}

func TestHexColor(t *testing.T) {
	assert.NoError(t, HexColor(""))
	assert.NoError(t, HexColor("#3B82F6"))
	assert.NoError(t, HexColor("#abcdef"))
	assert.Error(t, HexColor("3B82F6"))
	assert.Error(t, HexColor("#3B82F"))
	assert.Error(t, HexColor("#GGGGGG"))
}

func TestFrequency(t *testing.T) {
	assert.NoError(t, Frequency("daily"))
	assert.NoError(t, Frequency("three-times-daily"))
	assert.Error(t, Frequency("hourly"))
}

func TestGender(t *testing.T) {
	assert.NoError(t, Gender("female"))
	assert.Error(t, Gender("unknown"))
}

func TestWebhookName(t *testing.T) {
	assert.NoError(t, WebhookName("my-phone"))
	assert.Error(t, WebhookName(""))
	assert.Error(t, WebhookName("-leading-dash"))
	assert.Error(t, WebhookName(strings.Repeat("a", 51)))
}

func TestURL(t *testing.T) {
	assert.NoError(t, URL("https://discord.com/api/webhooks/123/abc"))
	assert.Error(t, URL(""))
	assert.Error(t, URL("ftp://example.com/hook"))
	assert.Error(t, URL("not a url"))
}
