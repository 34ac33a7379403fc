package loaders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

const (
	defaultAirtableURL = "https://api.airtable.com/v0"
	airtablePageSize   = 100
	// Airtable paginates at 100 rows; anything past this is a runaway offset loop.
	airtableMaxPages = 50
)

// AirtableConfig configures the Airtable-backed store.
type AirtableConfig struct {
	APIKey string
	BaseID string
	// GlobalBaseID holds shared tables (FAQ). Empty means BaseID.
	GlobalBaseID string
	BaseURL      string
	// RPS caps outgoing requests per second across all goroutines.
	RPS        float64
	HTTPClient *http.Client
}

// AirtableStore reads tables over the Airtable REST API.
type AirtableStore struct {
	apiKey       string
	baseID       string
	globalBaseID string
	baseURL      string
	client       *http.Client
	limiter      *rate.Limiter
}

// StatusError is a non-2xx Airtable response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("airtable returned status %d: %s", e.Code, e.Body)
}

type airtablePage struct {
	Records []struct {
		ID     string         `json:"id"`
		Fields map[string]any `json:"fields"`
	} `json:"records"`
	Offset string `json:"offset"`
}

func NewAirtableStore(cfg AirtableConfig) (*AirtableStore, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("airtable api key is required")
	}
	if cfg.BaseID == "" {
		return nil, fmt.Errorf("airtable base id is required")
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultAirtableURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	rps := cfg.RPS
	if rps <= 0 {
		rps = 5
	}
	globalBase := cfg.GlobalBaseID
	if globalBase == "" {
		globalBase = cfg.BaseID
	}

	return &AirtableStore{
		apiKey:       cfg.APIKey,
		baseID:       cfg.BaseID,
		globalBaseID: globalBase,
		baseURL:      baseURL,
		client:       client,
		limiter:      rate.NewLimiter(rate.Limit(rps), int(rps)+1),
	}, nil
}

// Fetch asks Airtable to filter by slug. If the filtered request fails (most
// often a 422 because the table names its slug column differently) it falls
// back to reading the whole table and filtering locally over every slug alias.
func (a *AirtableStore) Fetch(ctx context.Context, table, slug string) ([]types.Record, error) {
	formula := fmt.Sprintf("LOWER({%s})='%s'", types.Aliases(types.FieldSlug)[0], escapeFormula(strings.ToLower(strings.TrimSpace(slug))))

	records, err := a.list(ctx, table, formula)
	if err == nil {
		return records, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	utils.Zlog.Debug("Filtered airtable fetch failed, filtering locally",
		zap.String("table", table),
		zap.String("slug", slug),
		zap.Error(err))

	all, err := a.list(ctx, table, "")
	if err != nil {
		return nil, err
	}
	return FilterBySlug(all, slug), nil
}

func (a *AirtableStore) FetchAll(ctx context.Context, table string) ([]types.Record, error) {
	return a.list(ctx, table, "")
}

// Ping reads a single row of the schools table.
func (a *AirtableStore) Ping(ctx context.Context) error {
	_, _, err := a.page(ctx, a.baseFor(TableSchools), TableSchools, url.Values{"maxRecords": {"1"}})
	return err
}

func (a *AirtableStore) baseFor(table string) string {
	if table == TableFAQ {
		return a.globalBaseID
	}
	return a.baseID
}

func (a *AirtableStore) list(ctx context.Context, table, formula string) ([]types.Record, error) {
	base := a.baseFor(table)
	params := url.Values{"pageSize": {fmt.Sprint(airtablePageSize)}}
	if formula != "" {
		params.Set("filterByFormula", formula)
	}

	var out []types.Record
	for page := 0; page < airtableMaxPages; page++ {
		records, offset, err := a.page(ctx, base, table, params)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
		if offset == "" {
			return out, nil
		}
		params.Set("offset", offset)
	}

	utils.Zlog.Warn("Airtable pagination limit reached",
		zap.String("table", table),
		zap.Int("records", len(out)))
	return out, nil
}

func (a *AirtableStore) page(ctx context.Context, base, table string, params url.Values) ([]types.Record, string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, "", fmt.Errorf("rate limiter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s", a.baseURL, url.PathEscape(base), url.PathEscape(table), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, "", &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var p airtablePage
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, "", fmt.Errorf("failed to decode response: %w", err)
	}

	records := make([]types.Record, 0, len(p.Records))
	for _, r := range p.Records {
		if r.Fields == nil {
			continue
		}
		records = append(records, types.Record(r.Fields))
	}
	return records, p.Offset, nil
}

func escapeFormula(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
