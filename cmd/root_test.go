package cmd

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/theirongolddev/paydash/internal/api"
	"github.com/theirongolddev/paydash/internal/config"
	"github.com/theirongolddev/paydash/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func resetFlags(t *testing.T) {
	t.Helper()
	apiURL, timeout, quiet, verbose := flagAPIURL, flagTimeout, flagQuiet, flagVerbose
	t.Cleanup(func() {
		flagAPIURL, flagTimeout, flagQuiet, flagVerbose = apiURL, timeout, quiet, verbose
	})
	flagAPIURL, flagTimeout, flagQuiet, flagVerbose = "", 0, false, false
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvBaseURLCompat, "")
}

func TestLogLevel(t *testing.T) {
	resetFlags(t)
	assert.Equal(t, slog.LevelWarn, logLevel())

	flagQuiet = true
	assert.Equal(t, slog.LevelError, logLevel())

	flagVerbose = true
	assert.Equal(t, slog.LevelDebug, logLevel(), "verbose wins over quiet")
}

func TestNewClientRejectsInvalidBaseURL(t *testing.T) {
	resetFlags(t)
	flagAPIURL = "localhost:5000"

	_, err := newClient(config.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrInvalidBaseURL)
	assert.Contains(t, err.Error(), "from flag")
}

func TestNewClientResolvesBaseURL(t *testing.T) {
	resetFlags(t)
	cfg := config.DefaultConfig()
	cfg.API.BaseURL = "http://config.example/api/"

	c, err := newClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Equal(t, "http://config.example/api", c.BaseURL())

	flagAPIURL = "https://flag.example/api"
	flagTimeout = 3 * time.Second
	c, err = newClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example/api", c.BaseURL())
}

func TestDecodeFailedKeepsEveryEntry(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"transaction_id":7,"amount":"12.5","transaction_status":"declined"}`),
		json.RawMessage(`"not an object"`),
	}

	txs := decodeFailed(raw)
	require.Len(t, txs, 2)
	assert.Equal(t, model.ID("7"), txs[0].ID)
	assert.InDelta(t, 12.5, txs[0].Amount.Float64(), 1e-9)
	assert.Equal(t, "declined", txs[0].Status)
	assert.Zero(t, txs[1].ID)
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "USD", orDash("USD"))
}
