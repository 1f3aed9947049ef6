// Package protocol defines the wire types and the newline-delimited JSON
// codec shared by every scenebridge command server. A request is a single
// JSON object carrying a tool name and its parameters; a response is a
// single JSON object carrying either tool-specific result fields or an
// "error" field, correlated 1:1 with the request that produced it.
package protocol

import "fmt"

// ErrorKey is the response field that marks a response as an error.
const ErrorKey = "error"

// Command represents one decoded request.
type Command struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
}

// Response represents the result object written back to the caller. It is
// either a tool-specific payload or an error response built with
// ErrorResponse.
type Response map[string]any

// ErrorResponse builds a response carrying only an error message.
func ErrorResponse(message string) Response {
	return Response{ErrorKey: message}
}

// Errorf builds an error response from a format string.
func Errorf(format string, args ...any) Response {
	return ErrorResponse(fmt.Sprintf(format, args...))
}

// IsError reports whether the response carries an error field.
func (r Response) IsError() bool {
	_, ok := r[ErrorKey]
	return ok
}

// ErrorMessage returns the error message, or the empty string for a
// success response.
func (r Response) ErrorMessage() string {
	message, _ := r[ErrorKey].(string)
	return message
}
