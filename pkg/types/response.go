package types

// SuccessEnvelope wraps every successful API payload.
type SuccessEnvelope struct {
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// ErrorEnvelope is the flat error body; clients surface Message directly.
type ErrorEnvelope struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Errors  any    `json:"errors,omitempty"`
}
