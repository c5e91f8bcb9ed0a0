// Package types holds the JSON envelopes shared by every Kitto API
// response.
package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Details is only populated for codes whose metadata allows it,
	// typically per-field validation messages.
	Details any `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
