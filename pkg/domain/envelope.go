package domain

import "encoding/json"

// Envelope codes the blog service uses. Only CodeOK signals success.
const (
	CodeOK           = 200
	CodeUnauthorized = 401
)

// Envelope is the {code, message, data} wrapper around every API response.
// Data stays raw until the caller unwraps it into a concrete type.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// OK reports whether the envelope signals application-level success.
func (e Envelope) OK() bool {
	return e.Code == CodeOK
}

// HasData reports whether the envelope carries a non-null payload.
func (e Envelope) HasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}
