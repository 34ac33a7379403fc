package debug

import (
	"context"

	"github.com/Conversly/autoskola-bot/internal/loaders"
)

type Service struct {
	store     loaders.Store
	tenantFAQ bool
}

func NewService(store loaders.Store, tenantFAQ bool) *Service {
	return &Service{store: store, tenantFAQ: tenantFAQ}
}

// Inspect fetches everything a request for slug would see.
func (s *Service) Inspect(ctx context.Context, slug string) Response {
	data := loaders.FetchTenantData(ctx, s.store, slug, loaders.FetchOptions{TenantFAQ: s.tenantFAQ})

	tables := make(map[string]TableReport, len(data.Results))
	for name, res := range data.Results {
		report := TableReport{Rows: res.Rows()}
		if res.Err != nil {
			report.Error = res.Err.Error()
		}
		report.Count = len(report.Rows)
		tables[name] = report
	}

	res := Response{Slug: slug, School: data.School, Tables: tables}
	res.OK = true
	return res
}
