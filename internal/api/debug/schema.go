package debug

import (
	"github.com/Conversly/autoskola-bot/internal/types"
)

// TableReport is the raw outcome of one table fetch.
type TableReport struct {
	Count int            `json:"count"`
	Error string         `json:"error,omitempty"`
	Rows  []types.Record `json:"rows"`
}

type Response struct {
	types.BaseResponse
	Slug   string                 `json:"slug"`
	School types.School           `json:"school"`
	Tables map[string]TableReport `json:"tables"`
}
