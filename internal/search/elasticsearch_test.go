package search

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeES struct {
	mu       sync.Mutex
	requests []string
	bulk     []string
}

func (f *fakeES) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/_bulk"):
			sc := bufio.NewScanner(r.Body)
			f.mu.Lock()
			for sc.Scan() {
				f.bulk = append(f.bulk, sc.Text())
			}
			f.mu.Unlock()
			_, _ = w.Write([]byte(`{"took":1,"errors":false,"items":[]}`))
		case strings.HasSuffix(r.URL.Path, "/_search"):
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Contains(t, body, "query")
			_, _ = w.Write([]byte(`{"hits":{"total":{"value":1},"hits":[
				{"_id":"faq-1","_score":3.2,"_source":{"question":"Koliko traje tečaj?","content":"Tečaj traje 2 mjeseca."}}
			]}}`))
		case r.Method == http.MethodDelete:
			_, _ = w.Write([]byte(`{"acknowledged":true}`))
		case r.Method == http.MethodPut:
			_, _ = w.Write([]byte(`{"acknowledged":true,"index":"faq"}`))
		default:
			_, _ = w.Write([]byte(`{"name":"test","cluster_name":"test","version":{"number":"8.11.0"},"tagline":"You Know, for Search"}`))
		}
	}
}

func newFakeIndex(t *testing.T) (*FAQIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{}
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	idx, err := NewFAQIndex([]string{server.URL}, "faq")
	require.NoError(t, err)
	return idx, fake
}

func TestFAQIndex_Replace(t *testing.T) {
	idx, fake := newFakeIndex(t)

	err := idx.Replace(context.Background(), []Doc{
		{ID: "faq-1", Question: "Koliko traje tečaj?", Content: "Tečaj traje 2 mjeseca."},
		{ID: "faq-2", Question: "Gdje je poligon?", Content: "Jankomir 1."},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"DELETE /faq", "PUT /faq", "POST /faq/_bulk"}, fake.requests)
	require.Len(t, fake.bulk, 4)
	assert.Contains(t, fake.bulk[0], `"_id":"faq-1"`)
	assert.Contains(t, fake.bulk[1], `"question":"Koliko traje tečaj?"`)
}

func TestFAQIndex_ReplaceWithNoDocsSkipsBulk(t *testing.T) {
	idx, fake := newFakeIndex(t)
	require.NoError(t, idx.Replace(context.Background(), nil))
	assert.Equal(t, []string{"DELETE /faq", "PUT /faq"}, fake.requests)
}

func TestFAQIndex_Search(t *testing.T) {
	idx, _ := newFakeIndex(t)

	hits, err := idx.Search(context.Background(), "koliko traje", 2)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "faq-1", hits[0].ID)
	assert.InDelta(t, 3.2, hits[0].Score, 0.001)
	assert.Equal(t, "Koliko traje tečaj?", hits[0].Question)

	hits, err = idx.Search(context.Background(), "  ", 2)
	assert.NoError(t, err)
	assert.Empty(t, hits)
}

func TestNewFAQIndex_Validation(t *testing.T) {
	_, err := NewFAQIndex(nil, "faq")
	assert.Error(t, err)
	_, err = NewFAQIndex([]string{"http://localhost:9200"}, "")
	assert.Error(t, err)
}

func TestHintSections(t *testing.T) {
	out := HintSections([]Hit{
		{Question: "Koliko traje tečaj?", Content: "Tečaj traje 2 mjeseca."},
		{Content: "## Gdje je poligon?\nJankomir 1.", Question: "Gdje je poligon?"},
		{Question: "prazno"},
	})
	assert.Equal(t, []string{
		"Pitanje: Koliko traje tečaj?\nTečaj traje 2 mjeseca.",
		"## Gdje je poligon?\nJankomir 1.",
	}, out)
}
