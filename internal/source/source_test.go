package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceFetch(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	src := NewHTTPSource("local", srv.URL, time.Second, Query{Limit: 5, Head: "abc", Address: "1cf126"})
	body, err := src.Fetch(context.Background(), EndpointBlocks)
	require.NoError(t, err)
	assert.Equal(t, `{"data":[]}`, string(body))
	assert.Equal(t, "/blocks", gotPath)
	assert.Equal(t, []string{"5"}, gotQuery["limit"])
	assert.Equal(t, []string{"abc"}, gotQuery["head"])
	assert.NotContains(t, gotQuery, "address", "address only filters state")
	assert.NotContains(t, gotQuery, "start")

	_, err = src.Fetch(context.Background(), EndpointState)
	require.NoError(t, err)
	assert.Equal(t, "/state", gotPath)
	assert.Equal(t, []string{"1cf126"}, gotQuery["address"])
}

func TestQueryStartScoping(t *testing.T) {
	q := Query{Start: "0x0002", StartOn: EndpointBlocks}
	assert.Equal(t, map[string]string{"start": "0x0002"}, q.params(EndpointBlocks))
	assert.Empty(t, q.params(EndpointState), "a block id is not a state paging id")

	q.StartOn = ""
	assert.Equal(t, "0x0002", q.params(EndpointState)["start"])
}

func TestHTTPSourceStartOnlyOnItsEndpoint(t *testing.T) {
	queries := map[string]map[string][]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries[r.URL.Path] = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	src := NewHTTPSource("local", srv.URL, time.Second, Query{Start: "1cf126", StartOn: EndpointState})
	_, err := src.Fetch(context.Background(), EndpointBlocks)
	require.NoError(t, err)
	_, err = src.Fetch(context.Background(), EndpointState)
	require.NoError(t, err)

	assert.NotContains(t, queries["/blocks"], "start")
	assert.Equal(t, []string{"1cf126"}, queries["/state"]["start"])
}

func TestHTTPSourceStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{"not found", http.StatusNotFound, "Error code 404 when trying to get /blocks endpoint"},
		{"not implemented", http.StatusNotImplemented, "Error code 501 when trying to get /blocks endpoint"},
		{"redirect", http.StatusMovedPermanently, "Unexpected code 301 when trying to get /blocks endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.code == http.StatusMovedPermanently {
					w.Header().Set("Location", "/elsewhere")
				}
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			_, err := NewHTTPSource("local", srv.URL, time.Second, Query{}).Fetch(context.Background(), EndpointBlocks)
			require.Error(t, err)
			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.code, statusErr.Code)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestHTTPSourceTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSource("gone", url, time.Second, Query{}).Fetch(context.Background(), EndpointState)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get /state endpoint from gone")
}

func TestHTTPSourceContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTPSource("local", srv.URL, time.Second, Query{}).Fetch(ctx, EndpointBlocks)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data":[]}`), 0o644))

	body, err := FileSource{Path: path}.Fetch(context.Background(), EndpointBlocks)
	require.NoError(t, err)
	assert.Equal(t, `{"data":[]}`, string(body))

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.Fetch(context.Background(), EndpointBlocks)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "unable to open file for reading block data")
}
