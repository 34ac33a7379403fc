package ask

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/Conversly/autoskola-bot/internal/facts"
	"github.com/Conversly/autoskola-bot/internal/faq"
	"github.com/Conversly/autoskola-bot/internal/llm"
	"github.com/Conversly/autoskola-bot/internal/loaders"
	"github.com/Conversly/autoskola-bot/internal/metrics"
	"github.com/Conversly/autoskola-bot/internal/prompt"
	"github.com/Conversly/autoskola-bot/internal/search"
	"github.com/Conversly/autoskola-bot/internal/utils"
)

var ErrMissingMessage = errors.New("missing message")

const (
	hintCount   = 3
	hintTimeout = 2 * time.Second
)

// Options tune the answer pipeline.
type Options struct {
	TenantFAQ   bool
	FactsDirect bool
	Timeout     time.Duration
}

// Input is one question for one school.
type Input struct {
	Slug    string
	Message string
	History []*schema.Message
}

// Result is the reply and the component that produced it.
type Result struct {
	Reply   string
	Source  string
	Handler string
}

type Service struct {
	store     loaders.Store
	completer llm.Completer
	router    *facts.Router
	index     search.Index // optional
	opts      Options
}

func NewService(store loaders.Store, completer llm.Completer, router *facts.Router, index search.Index, opts Options) *Service {
	return &Service{
		store:     store,
		completer: completer,
		router:    router,
		index:     index,
		opts:      opts,
	}
}

// Ask answers from the FAQ table, then the fact router, then the completion
// API. Only a missing message is an error; store and completion failures
// degrade to a reply.
func (s *Service) Ask(ctx context.Context, in Input) (Result, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return Result{}, ErrMissingMessage
	}

	data := loaders.FetchTenantData(ctx, s.store, in.Slug, loaders.FetchOptions{TenantFAQ: s.opts.TenantFAQ})

	if !faq.IsCategoryOrPriceQuery(message) {
		if answer := faq.Match(message, data.FAQ); answer != "" {
			return s.done(Result{Reply: answer, Source: metrics.SourceFAQ}, in.Slug), nil
		}
	}

	factsText, handler := s.router.Extract(message, data, data.School)
	if factsText != "" && s.opts.FactsDirect {
		return s.done(Result{Reply: factsText, Source: metrics.SourceFacts, Handler: handler}, in.Slug), nil
	}

	systemPrompt := prompt.Build(data.School, data, factsText, s.hints(ctx, message))
	messages := llm.BuildMessages(systemPrompt, in.History, message)

	reply, err := s.completer.Complete(ctx, messages, s.opts.Timeout)
	if err != nil {
		utils.Zlog.Error("Completion fell back to canned reply",
			zap.String("slug", in.Slug),
			zap.Error(err))
		if reply == "" {
			reply = llm.FallbackReply
		}
		return s.done(Result{Reply: reply, Source: metrics.SourceFallback, Handler: handler}, in.Slug), nil
	}
	return s.done(Result{Reply: reply, Source: metrics.SourceLLM, Handler: handler}, in.Slug), nil
}

// hints are best effort; any search failure just drops them.
func (s *Service) hints(ctx context.Context, message string) []string {
	if s.index == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, hintTimeout)
	defer cancel()

	hits, err := s.index.Search(ctx, message, hintCount)
	if err != nil {
		utils.Zlog.Warn("FAQ index search failed", zap.Error(err))
		return nil
	}
	return search.HintSections(hits)
}

func (s *Service) done(res Result, slug string) Result {
	metrics.RepliesTotal.WithLabelValues(res.Source).Inc()
	utils.Zlog.Debug("Reply produced",
		zap.String("slug", slug),
		zap.String("source", res.Source),
		zap.String("handler", res.Handler))
	return res
}
