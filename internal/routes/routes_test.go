package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Conversly/autoskola-bot/internal/api/ask"
	"github.com/Conversly/autoskola-bot/internal/config"
	"github.com/Conversly/autoskola-bot/internal/facts"
	"github.com/Conversly/autoskola-bot/internal/llm"
	"github.com/Conversly/autoskola-bot/internal/types"
)

type emptyStore struct{}

func (emptyStore) Fetch(context.Context, string, string) ([]types.Record, error) { return nil, nil }
func (emptyStore) FetchAll(context.Context, string) ([]types.Record, error)      { return nil, nil }
func (emptyStore) Ping(context.Context) error                                    { return nil }

type cannedCompleter struct {
	reply string
	calls int
}

func (c *cannedCompleter) Complete(context.Context, []*schema.Message, time.Duration) (string, error) {
	c.calls++
	return c.reply, nil
}

func testEngine() *gin.Engine {
	return testEngineWith(&cannedCompleter{reply: "Pozdrav!"})
}

func testEngineWith(completer llm.Completer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{DefaultSlug: "demo", ServiceName: "autoskola-bot", FAQScope: config.FAQScopeGlobal}
	svc := ask.NewService(emptyStore{}, completer, facts.NewRouter(facts.Options{}), nil, ask.Options{FactsDirect: true})

	r := gin.New()
	SetupRoutes(r, Deps{Store: emptyStore{}, Ask: svc}, cfg)
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestSetupRoutes(t *testing.T) {
	r := testEngine()

	tests := []struct {
		target string
		code   int
	}{
		{"/", http.StatusOK},
		{"/api/health", http.StatusOK},
		{"/api/health/ready", http.StatusOK},
		{"/api/ask?q=bok", http.StatusOK},
		{"/api/debug", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/admin/search?q=x", http.StatusForbidden},
		{"/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := get(r, tt.target)
			assert.Equal(t, tt.code, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestMetricsExposeReplyCounter(t *testing.T) {
	r := testEngine()
	get(r, "/api/ask?q=bok")

	w := get(r, "/metrics")
	assert.Contains(t, w.Body.String(), "autoskola_replies_total")
}

func TestAskFallsThroughToCompleter(t *testing.T) {
	completer := &cannedCompleter{reply: "Pozdrav!"}
	r := testEngineWith(completer)

	w := get(r, "/api/ask?q=bok")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reply":"Pozdrav!"`)
	assert.Contains(t, w.Body.String(), `"source":"llm"`)
	assert.Equal(t, 1, completer.calls)
}
