package restyutil

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	lock     sync.Mutex
	messages map[string]string
}

func (o *memoryOutput) Write(id string, contents string) {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.messages[id] = contents
}

func TestInstrumentClientDumpsMessages(t *testing.T) {
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(previous)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "yes")
		fmt.Fprint(w, "<html>hello</html>")
	}))
	defer server.Close()

	output := &memoryOutput{messages: map[string]string{}}
	client := resty.New()
	InstrumentClient(client, nil, output)

	res, err := client.R().Get(server.URL + "/catalog")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())

	require.Len(t, output.messages, 1)
	message := output.messages["1"]
	require.True(t, strings.HasPrefix(message, "> GET "+server.URL+"/catalog\n"))
	require.Contains(t, message, "< 200 OK\n")
	require.Contains(t, message, "< X-Test: yes\n")
	require.True(t, strings.HasSuffix(message, "\n\n<html>hello</html>"))
}

func TestInstrumentClientWithoutOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := resty.New()
	InstrumentClient(client, nil, nil)

	res, err := client.R().Get(server.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.StatusCode())
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "resty")
	err := os.MkdirAll(dir, 0777)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "stale.http"), []byte("old"), 0600)
	require.NoError(t, err)

	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	output.Write("7", "contents")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	contents, err := os.ReadFile(filepath.Join(dir, "7.http"))
	require.NoError(t, err)
	require.Equal(t, "contents", string(contents))
}
