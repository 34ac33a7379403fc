// Package facts turns a free-text message into a formatted answer sourced
// from the school's structured tables, so simple questions never reach the
// completion API.
package facts

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Conversly/autoskola-bot/internal/loaders"
	"github.com/Conversly/autoskola-bot/internal/types"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

// Query is the input every handler sees.
type Query struct {
	Raw    string
	Text   string // normalized
	Data   *loaders.TenantData
	School types.School
}

// Handler is one keyword-triggered answer strategy.
type Handler struct {
	Name    string
	Trigger func(q *Query) bool
	Answer  func(q *Query) string
}

// Options tune individual handlers.
type Options struct {
	// GroupInstructorSlugs lists tenants whose instructor roster is grouped by location.
	GroupInstructorSlugs []string
}

// Router evaluates handlers in priority order.
type Router struct {
	handlers []Handler
}

func NewRouter(opts Options) *Router {
	return &Router{handlers: defaultHandlers(opts)}
}

// Handlers returns the handler chain in evaluation order.
func (r *Router) Handlers() []Handler {
	out := make([]Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}

// Extract runs the chain and returns the first non-empty answer together with
// the name of the handler that produced it. Both are "" when nothing fired.
func (r *Router) Extract(message string, data *loaders.TenantData, school types.School) (string, string) {
	if data == nil {
		data = &loaders.TenantData{}
	}
	q := &Query{
		Raw:    message,
		Text:   utils.Normalize(message),
		Data:   data,
		School: school,
	}
	if q.Text == "" {
		return "", ""
	}

	for _, h := range r.handlers {
		if !h.Trigger(q) {
			continue
		}
		answer := strings.TrimSpace(h.Answer(q))
		if answer == "" {
			continue
		}
		utils.Zlog.Debug("Fact handler answered",
			zap.String("handler", h.Name),
			zap.String("slug", school.Slug))
		return answer, h.Name
	}
	return "", ""
}

func defaultHandlers(opts Options) []Handler {
	groupSlugs := make(map[string]bool, len(opts.GroupInstructorSlugs))
	for _, s := range opts.GroupInstructorSlugs {
		groupSlugs[strings.ToLower(strings.TrimSpace(s))] = true
	}

	return []Handler{
		{Name: "school_location", Trigger: isSchoolLocationQuery, Answer: answerSchoolLocation},
		{Name: "instructors", Trigger: isInstructorQuery, Answer: func(q *Query) string {
			return answerInstructors(q, groupSlugs[strings.ToLower(q.School.Slug)])
		}},
		{Name: "category_summary", Trigger: isCategorySummaryQuery, Answer: answerCategorySummary},
		{Name: "special_location", Trigger: isSpecialLocationQuery, Answer: answerSpecialLocation},
		{Name: "payment", Trigger: isPaymentQuery, Answer: answerPayment},
		{Name: "fleet", Trigger: isFleetQuery, Answer: answerFleet},
	}
}
