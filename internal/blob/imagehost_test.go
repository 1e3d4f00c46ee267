package blob

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageHostStore(t *testing.T) {
	var gotKey string
	var gotFilename string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload", r.URL.Path)
		gotKey = r.Header.Get("X-Api-Key")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		gotFilename = fh.Filename

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"url": "https://cdn.example.com/i/abc.png"}`))
	}))
	defer srv.Close()

	h := NewImageHost(srv.URL, "test-key")
	url, err := h.Store(context.Background(), []byte("png-bytes"), "image/png")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/i/abc.png", url)
	assert.Equal(t, "test-key", gotKey)
	assert.Contains(t, gotFilename, ".png")
}

func TestImageHostStoreRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	h := NewImageHost(srv.URL, "test-key")
	_, err := h.Store(context.Background(), []byte("png-bytes"), "image/png")
	assert.Error(t, err)
}

func TestImageHostDelete(t *testing.T) {
	var gotURL string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotURL = r.URL.Query().Get("url")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	h := NewImageHost(srv.URL, "test-key")
	err := h.Delete(context.Background(), "https://cdn.example.com/i/abc.png")

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/i/abc.png", gotURL)
}

func TestImageHostDeleteTreatsMissingAsGone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	h := NewImageHost(srv.URL, "test-key")
	assert.NoError(t, h.Delete(context.Background(), "https://cdn.example.com/i/gone.png"))
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	m := NewMemory()

	url, err := m.Store(context.Background(), []byte("data"), "image/png")
	require.NoError(t, err)
	assert.True(t, m.Has(url))
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(context.Background(), url))
	assert.False(t, m.Has(url))

	// deleting again is not an error
	require.NoError(t, m.Delete(context.Background(), url))
}
