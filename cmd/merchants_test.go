package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn and returns what it printed.
func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	runErr := fn()
	os.Stdout = orig
	require.NoError(t, w.Close())
	out := <-done
	require.NoError(t, runErr)
	return out
}

func TestRunMerchants_NonASCIINames(t *testing.T) {
	resetFlags(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	long := strings.Repeat("é", 30)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/top-merchants" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `[
			{"merchant_name":"`+long+`","total_revenue":100},
			{"merchant_name":"Acme","total_revenue":"50"}
		]`)
	}))
	defer srv.Close()
	flagAPIURL = srv.URL

	out := captureStdout(t, func() error { return runMerchants(nil, nil) })
	require.True(t, utf8.ValidString(out))

	plain := ansi.Strip(out)
	var bars []string
	for _, line := range strings.Split(plain, "\n") {
		if strings.Contains(line, "$") {
			bars = append(bars, line)
		}
	}
	require.Len(t, bars, 2)
	assert.Contains(t, bars[0], strings.Repeat("é", maxMerchantLabel-1)+"…")
	assert.Contains(t, bars[1], "Acme")

	// Bars start in the same column.
	col := func(s string) int { return lipgloss.Width(s[:strings.Index(s, "█")]) }
	assert.Equal(t, col(bars[0]), col(bars[1]))
}
