// Package search keeps FAQ entries in an Elasticsearch index so the completion
// prompt can carry the closest curated answers as hints.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/Conversly/autoskola-bot/internal/utils"
)

const faqMapping = `{
	"mappings": {
		"properties": {
			"question": {"type": "text"},
			"content":  {"type": "text"}
		}
	}
}`

// Doc is one indexed FAQ entry.
type Doc struct {
	ID       string `json:"-"`
	Question string `json:"question"`
	Content  string `json:"content"`
}

// Hit is a search result.
type Hit struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}

// Index is the part of the search backend the service uses.
type Index interface {
	Replace(ctx context.Context, docs []Doc) error
	Search(ctx context.Context, query string, size int) ([]Hit, error)
}

// FAQIndex is an Index backed by Elasticsearch.
type FAQIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewFAQIndex(addresses []string, index string) (*FAQIndex, error) {
	if len(addresses) == 0 {
		return nil, errors.New("at least one elasticsearch address is required")
	}
	if index == "" {
		return nil, errors.New("index name is required")
	}
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &FAQIndex{client: es, index: index}, nil
}

// Ping tests the Elasticsearch connection.
func (f *FAQIndex) Ping(ctx context.Context) error {
	res, err := f.client.Ping(f.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

// Replace drops the index and rebuilds it from docs.
func (f *FAQIndex) Replace(ctx context.Context, docs []Doc) error {
	es := f.client

	res, err := es.Indices.Delete([]string{f.index},
		es.Indices.Delete.WithContext(ctx),
		es.Indices.Delete.WithIgnoreUnavailable(true))
	if err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete index: %s", res.Status())
	}

	res, err = es.Indices.Create(f.index,
		es.Indices.Create.WithContext(ctx),
		es.Indices.Create.WithBody(strings.NewReader(faqMapping)))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index: %s", res.Status())
	}

	if len(docs) == 0 {
		return nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, d := range docs {
		action := map[string]any{"index": map[string]any{"_index": f.index, "_id": d.ID}}
		if err := enc.Encode(action); err != nil {
			return err
		}
		if err := enc.Encode(d); err != nil {
			return err
		}
	}

	res, err = es.Bulk(&body,
		es.Bulk.WithContext(ctx),
		es.Bulk.WithIndex(f.index),
		es.Bulk.WithRefresh("true"))
	if err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk index: %s", res.Status())
	}

	var bulk struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulk); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if bulk.Errors {
		return errors.New("bulk index reported item errors")
	}

	utils.Zlog.Info("FAQ index rebuilt",
		zap.String("index", f.index),
		zap.Int("documents", len(docs)))
	return nil
}

// Search runs a multi_match query over question and content.
func (f *FAQIndex) Search(ctx context.Context, query string, size int) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if size < 1 {
		size = 3
	}

	q := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"fields": []string{"question^2", "content"},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, err
	}

	es := f.client
	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(f.index),
		es.Search.WithBody(&buf),
		es.Search.WithSize(size))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Score  float64 `json:"_score"`
				Source Doc     `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]Hit, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		hits = append(hits, Hit{
			ID:       h.ID,
			Question: h.Source.Question,
			Content:  h.Source.Content,
			Score:    h.Score,
		})
	}
	return hits, nil
}

// HintSections renders hits as prompt sections.
func HintSections(hits []Hit) []string {
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if h.Content == "" {
			continue
		}
		if h.Question != "" && !strings.Contains(h.Content, h.Question) {
			out = append(out, "Pitanje: "+h.Question+"\n"+h.Content)
			continue
		}
		out = append(out, h.Content)
	}
	return out
}
