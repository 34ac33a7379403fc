package types

// BaseResponse is embedded in every JSON payload the service returns.
type BaseResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
