package loaders

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Conversly/autoskola-bot/internal/metrics"
	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

// GlobalSlug marks FAQ rows shared by every tenant.
const GlobalSlug = "global"

// FetchOptions controls how the per-request bundle is assembled.
type FetchOptions struct {
	// TenantFAQ keeps only FAQ rows whose slug is the tenant, "global" or empty.
	TenantFAQ bool
}

// TenantData is everything one request knows about a driving school.
type TenantData struct {
	Slug        string
	School      types.School
	Categories  []types.Record
	Prices      []types.Record
	Fees        []types.Record
	Payments    []types.Record
	Extras      []types.Record
	Instructors []types.Record
	Vehicles    []types.Record
	Locations   []types.Record
	FAQ         []types.Record

	// Results keeps the raw outcome of every fetch for diagnostics.
	Results map[string]TableResult
}

// FetchTenantData issues every table fetch for slug concurrently and waits for
// all of them. A failed fetch is logged and its table is treated as empty; it
// never fails the bundle.
func FetchTenantData(ctx context.Context, store Store, slug string, opts FetchOptions) *TenantData {
	start := time.Now()

	var (
		mu      sync.Mutex
		results = make(map[string]TableResult, len(TenantTables)+2)
		g       errgroup.Group
	)
	record := func(res TableResult) {
		if res.Err != nil {
			metrics.StoreFetchFailures.WithLabelValues(res.Table).Inc()
			utils.Zlog.Warn("Record store fetch failed, treating table as empty",
				zap.String("table", res.Table),
				zap.String("slug", slug),
				zap.Error(res.Err))
		}
		mu.Lock()
		results[res.Table] = res
		mu.Unlock()
	}

	for _, table := range append([]string{TableSchools}, TenantTables...) {
		g.Go(func() error {
			records, err := store.Fetch(ctx, table, slug)
			record(newResult(table, records, err))
			return nil
		})
	}
	g.Go(func() error {
		records, err := store.FetchAll(ctx, TableFAQ)
		if err == nil && opts.TenantFAQ {
			records = scopeFAQ(records, slug)
		}
		record(newResult(TableFAQ, records, err))
		return nil
	})
	_ = g.Wait()

	data := &TenantData{
		Slug:        slug,
		Categories:  results[TableCategories].Rows(),
		Prices:      results[TablePrices].Rows(),
		Fees:        results[TableFees].Rows(),
		Payments:    results[TablePayments].Rows(),
		Extras:      results[TableExtras].Rows(),
		Instructors: results[TableInstructors].Rows(),
		Vehicles:    results[TableVehicles].Rows(),
		Locations:   results[TableLocations].Rows(),
		FAQ:         results[TableFAQ].Rows(),
		Results:     results,
	}
	data.School = schoolFrom(slug, results[TableSchools].Rows())

	utils.Zlog.Debug("Tenant data fetched",
		zap.String("slug", slug),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()))

	return data
}

// LoadSchool resolves a single school profile. A missing or failed lookup
// yields a profile carrying only the slug.
func LoadSchool(ctx context.Context, store Store, slug string) (types.School, error) {
	records, err := store.Fetch(ctx, TableSchools, slug)
	if err != nil {
		return types.School{Slug: slug}, &FetchError{Table: TableSchools, Err: err}
	}
	return schoolFrom(slug, records), nil
}

func schoolFrom(slug string, records []types.Record) types.School {
	if len(records) == 0 {
		return types.School{Slug: slug}
	}
	return types.SchoolFromRecord(slug, records[0])
}

func scopeFAQ(records []types.Record, slug string) []types.Record {
	want := strings.ToLower(strings.TrimSpace(slug))
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		s := strings.ToLower(r.Get(types.FieldSlug))
		if s == "" || s == GlobalSlug || s == want {
			out = append(out, r)
		}
	}
	return out
}
