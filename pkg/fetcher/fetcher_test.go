package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>hello</body></html>`))
	}))
	defer server.Close()

	f := New(5 * time.Second)
	res, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(res.Body), "hello")
	assert.Greater(t, res.Elapsed, time.Duration(0))
}

func TestFetchNonOKStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New(5 * time.Second)
	res, err := f.Fetch(context.Background(), server.URL+"/missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFetchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := New(2 * time.Second)
	res, err := f.Fetch(context.Background(), url)
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestFetchSendsHeaders(t *testing.T) {
	var gotUA, gotUser, gotPass string
	var gotAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotUser, gotPass, gotAuth = r.BasicAuth()
	}))
	defer server.Close()

	f := New(5*time.Second, WithUserAgent("Tester/2.0"), WithBasicAuth("scott", "tiger"))
	_, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Tester/2.0", gotUA)
	require.True(t, gotAuth)
	assert.Equal(t, "scott", gotUser)
	assert.Equal(t, "tiger", gotPass)
}

func TestFetchCapsBodySize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 1024)))
	}))
	defer server.Close()

	f := New(5*time.Second, WithMaxBodySize(64))
	res, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, res.Body, 64)
}

func TestProbeDiscardsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>ignored</body></html>`))
	}))
	defer server.Close()

	f := New(5 * time.Second)
	res, err := f.Probe(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Nil(t, res.Body)
	assert.Greater(t, res.Elapsed, time.Duration(0))
}

func TestFetchRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	f := New(5 * time.Second)
	_, err := f.Fetch(ctx, server.URL)
	assert.Error(t, err)
}
