package provider

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, client *http.Client, url, body string) (*http.Response, string) {
	t.Helper()

	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(data)
}

func TestCachingTransport_SecondIdenticalRequestHitsCache(t *testing.T) {
	var counter atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewCachingTransport(t.TempDir(), nil)}

	_, body1 := postJSON(t, client, srv.URL, `{"input":"x"}`)
	_, body2 := postJSON(t, client, srv.URL, `{"input":"x"}`)

	require.Equal(t, body1, body2)
	require.Equal(t, int64(1), counter.Load(), "second request must be served from cache")
}

func TestCachingTransport_DifferentBodiesMiss(t *testing.T) {
	var counter atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewCachingTransport(t.TempDir(), nil)}

	postJSON(t, client, srv.URL, `{"input":"a"}`)
	postJSON(t, client, srv.URL, `{"input":"b"}`)

	require.Equal(t, int64(2), counter.Load())
}

func TestCachingTransport_ErrorResponsesNotCached(t *testing.T) {
	var counter atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewCachingTransport(t.TempDir(), nil)}

	resp1, _ := postJSON(t, client, srv.URL, `{}`)
	resp2, _ := postJSON(t, client, srv.URL, `{}`)

	require.Equal(t, http.StatusInternalServerError, resp1.StatusCode)
	require.Equal(t, http.StatusInternalServerError, resp2.StatusCode)
	require.Equal(t, int64(2), counter.Load(), "5xx responses must not be cached")
}

func TestCachingTransport_CorruptCacheFileFallsThrough(t *testing.T) {
	var counter atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.Add(1)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	client := &http.Client{Transport: NewCachingTransport(dir, nil)}

	postJSON(t, client, srv.URL, `{}`)

	// Corrupt every cache file.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		require.NoError(t, os.WriteFile(filepath.Join(dir, entry.Name()), []byte("not json"), 0o644))
	}

	_, body := postJSON(t, client, srv.URL, `{}`)
	require.JSONEq(t, `{"ok":true}`, body)
	require.Equal(t, int64(2), counter.Load(), "corrupt cache entry falls through to the network")
}
