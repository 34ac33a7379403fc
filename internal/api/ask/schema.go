package ask

import (
	"github.com/Conversly/autoskola-bot/internal/llm"
	"github.com/Conversly/autoskola-bot/internal/types"
)

// Request is the POST /api/ask body. Either q or message carries the question.
type Request struct {
	Q       string     `json:"q"`
	Message string     `json:"message"`
	History []llm.Turn `json:"history,omitempty"`
}

func (r Request) Text() string {
	if r.Q != "" {
		return r.Q
	}
	return r.Message
}

type Response struct {
	types.BaseResponse
	Reply     string `json:"reply,omitempty"`
	Source    string `json:"source,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
