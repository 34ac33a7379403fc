package loaders

import (
	"context"
	"fmt"
	"strings"

	"github.com/Conversly/autoskola-bot/internal/types"
)

// Logical table names shared by every store backend.
const (
	TableSchools     = "Autoskole"
	TableCategories  = "Kategorije"
	TablePrices      = "Cijene"
	TableFees        = "Pristojbe"
	TablePayments    = "Placanje"
	TableExtras      = "DodatneUsluge"
	TableInstructors = "Instruktori"
	TableVehicles    = "Vozila"
	TableLocations   = "Lokacije"
	TableFAQ         = "FAQ"
)

// TenantTables are the slug-scoped tables fetched for every request.
var TenantTables = []string{
	TableCategories,
	TablePrices,
	TableFees,
	TablePayments,
	TableExtras,
	TableInstructors,
	TableVehicles,
	TableLocations,
}

// Store is a read-only keyed record store queried by table name.
type Store interface {
	// Fetch returns the rows of table that belong to slug.
	Fetch(ctx context.Context, table, slug string) ([]types.Record, error)
	// FetchAll returns every row of table.
	FetchAll(ctx context.Context, table string) ([]types.Record, error)
	Ping(ctx context.Context) error
}

// FetchError is a failed table fetch.
type FetchError struct {
	Table string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Table, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// TableResult is the outcome of one table fetch. Callers that degrade on
// failure read Rows(), which is empty whenever Err is set.
type TableResult struct {
	Table   string
	Records []types.Record
	Err     *FetchError
}

// OK reports whether the fetch succeeded.
func (r TableResult) OK() bool { return r.Err == nil }

// Rows returns the fetched records, or an empty slice if the fetch failed.
func (r TableResult) Rows() []types.Record {
	if r.Err != nil || r.Records == nil {
		return []types.Record{}
	}
	return r.Records
}

func newResult(table string, records []types.Record, err error) TableResult {
	if err != nil {
		return TableResult{Table: table, Err: &FetchError{Table: table, Err: err}}
	}
	return TableResult{Table: table, Records: records}
}

// FilterBySlug keeps the records whose slug (under any alias) equals slug,
// ignoring case and surrounding whitespace.
func FilterBySlug(records []types.Record, slug string) []types.Record {
	want := strings.ToLower(strings.TrimSpace(slug))
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if strings.ToLower(r.Get(types.FieldSlug)) == want {
			out = append(out, r)
		}
	}
	return out
}
