package dto

import domainErrors "github.com/umaru-jpg/luvyn/internal/domain/errors"

// FieldError reports one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response is the envelope every API endpoint returns.
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Errors  []FieldError   `json:"errors,omitempty"`
	User    *UserSummary   `json:"user,omitempty"`
	Token   string         `json:"token,omitempty"`
	Order   *OrderResponse `json:"order,omitempty"`
	Backend string         `json:"backend,omitempty"`
}

// OrderListResponse always carries the orders array, even when empty.
type OrderListResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Orders  []OrderResponse `json:"orders"`
}

// Fail builds an unsuccessful envelope.
func Fail(message string) Response {
	return Response{Message: message}
}

// FieldErrors converts domain validation problems to their wire form.
func FieldErrors(err *domainErrors.ValidationError) []FieldError {
	out := make([]FieldError, 0, len(err.Fields))
	for _, f := range err.Fields {
		out = append(out, FieldError{Field: f.Field, Message: f.Message})
	}
	return out
}
