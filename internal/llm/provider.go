package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
)

// Completion failure kinds.
const (
	KindTimeout = "OPENAI_TIMEOUT"
	KindFailure = "OPENAI_FAILURE"
)

// User-facing replies for a failed completion.
const (
	FallbackReply = "Ispričavamo se, trenutno ne mogu odgovoriti. Molimo pokušajte ponovno ili kontaktirajte autoškolu izravno."
	TimeoutReply  = "Ispričavamo se, odgovor trenutno traje predugo. Molimo pokušajte ponovno za nekoliko trenutaka."
)

var ErrTimeout = errors.New("completion timed out")

// CompletionError reports why a completion produced a canned reply.
type CompletionError struct {
	Kind string
	Err  error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// Completer produces the assistant reply for a conversation. Implementations
// always return a reply the user can see; a non-nil error means the reply is
// a canned fallback.
type Completer interface {
	Complete(ctx context.Context, messages []*schema.Message, timeout time.Duration) (string, error)
}
