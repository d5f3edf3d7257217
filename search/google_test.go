package search_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanto12/google-search/search"
)

func newTestClient(t *testing.T, endpoint string) *search.Client {
	t.Helper()
	c, err := search.NewClient(
		"test-key",
		"test-cx",
		search.WithEndpoint(endpoint),
		search.WithPageDelay(0),
	)
	require.NoError(t, err)
	return c
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := search.NewClient("", "cx")
	assert.ErrorIs(t, err, search.ErrMissingCredentials)

	_, err = search.NewClient("key", "")
	assert.ErrorIs(t, err, search.ErrMissingCredentials)
}

func TestSearch_PaginatesWithOneIndexedOffsets(t *testing.T) {
	var mu sync.Mutex
	var starts []string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		starts = append(starts, r.URL.Query().Get("start"))
		mu.Unlock()

		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "test-cx", r.URL.Query().Get("cx"))
		assert.Equal(t, "golang jobs", r.URL.Query().Get("q"))

		start := r.URL.Query().Get("start")
		fmt.Fprintf(w, `{"items":[{"link":"https://result-%s.example/"}]}`, start)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	urls, fetched, err := c.Search(context.Background(), "golang jobs", 3)

	require.NoError(t, err)
	assert.Equal(t, 3, fetched)
	assert.Equal(t, []string{"1", "11", "21"}, starts)
	assert.Equal(t, []string{
		"https://result-1.example/",
		"https://result-11.example/",
		"https://result-21.example/",
	}, urls)
}

func TestSearch_PageWithNoItemsStillCounts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	urls, fetched, err := c.Search(context.Background(), "nothing", 2)

	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.Equal(t, 2, fetched)
}

func TestSearch_ErrorReturnsNoURLs(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, `{"items":[{"link":"https://first.example/"}]}`)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	urls, fetched, err := c.Search(context.Background(), "quota", 2)

	// Results gathered before the failure are discarded; the caller falls
	// back to the empty-result path.
	require.Error(t, err)
	assert.Empty(t, urls)
	assert.Equal(t, 2, fetched, "the failing page attempt still counts")
}

func TestSearch_CancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, ts.URL)
	_, _, err := c.Search(ctx, "cancelled", 1)
	assert.Error(t, err)
}
