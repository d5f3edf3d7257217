package crawler_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanto12/google-search/crawler"
)

func TestResultStore_AddMergesAndDeduplicates(t *testing.T) {
	rs := crawler.NewResultStore()

	rs.Add("https://a.example/", []string{"a@a.example", "b@a.example"})
	rs.Add("https://a.example/", []string{"b@a.example", "c@a.example"})

	results := rs.Results()
	require.Len(t, results, 1)
	assert.Equal(t, []string{"a@a.example", "b@a.example", "c@a.example"}, results[0].Emails)
}

func TestResultStore_EmptyAddIsNoOp(t *testing.T) {
	rs := crawler.NewResultStore()

	rs.Add("https://a.example/", nil)
	rs.Add("https://a.example/", []string{})

	assert.Equal(t, 0, rs.Len())
	assert.False(t, rs.Has("https://a.example/"))
}

func TestResultStore_KeepsInsertionOrder(t *testing.T) {
	rs := crawler.NewResultStore()

	rs.Add("https://b.example/", []string{"x@b.example"})
	rs.Add("https://a.example/", []string{"x@a.example"})
	rs.Add("https://c.example/", []string{"x@c.example"})

	results := rs.Results()
	require.Len(t, results, 3)
	assert.Equal(t, "https://b.example/", results[0].URL)
	assert.Equal(t, "https://a.example/", results[1].URL)
	assert.Equal(t, "https://c.example/", results[2].URL)
}

func TestResultStore_UniqueEmails(t *testing.T) {
	rs := crawler.NewResultStore()

	rs.Add("https://a.example/", []string{"shared@x.example", "a@x.example"})
	rs.Add("https://b.example/", []string{"shared@x.example", "b@x.example"})

	assert.Equal(t, []string{"a@x.example", "b@x.example", "shared@x.example"}, rs.UniqueEmails())
}

func TestResultStore_ConcurrentAdds(t *testing.T) {
	rs := crawler.NewResultStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url := fmt.Sprintf("https://site%d.example/", i%10)
			rs.Add(url, []string{fmt.Sprintf("user%d@site.example", i)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, rs.Len())
	assert.Len(t, rs.UniqueEmails(), 50)
}
