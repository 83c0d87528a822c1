package client

import (
	"encoding/json"
	"fmt"
	"sort"
)

// TransportError means the request never produced a response: the service was
// unreachable, the connection dropped or the context was cancelled.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is any non-2xx response that does not carry field-level detail.
type ServerError struct {
	Op         string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *ServerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	if msg := errorMessage(e.Body); msg != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

func (e *ServerError) Unwrap() error { return e.Err }

// ValidationError is a rejection carrying per-field messages, e.g.
// {"action": ["This field may not be blank."]}.
type ValidationError struct {
	Op         string
	StatusCode int
	Fields     map[string][]string
}

func (e *ValidationError) Error() string {
	names := e.FieldNames()
	if len(names) == 0 {
		return fmt.Sprintf("%s: status %d: validation failed", e.Op, e.StatusCode)
	}
	first := names[0]
	msg, _ := e.FieldError(first)
	return fmt.Sprintf("%s: status %d: %s: %s", e.Op, e.StatusCode, first, msg)
}

// FieldError returns the first message reported for field.
func (e *ValidationError) FieldError(field string) (string, bool) {
	msgs := e.Fields[field]
	if len(msgs) == 0 {
		return "", false
	}
	return msgs[0], true
}

// FieldNames returns the rejected field names in sorted order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseFieldErrors extracts every key of a JSON object whose value is an
// array of strings. Keys holding anything else are ignored.
func parseFieldErrors(body []byte) map[string][]string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	fields := make(map[string][]string)
	for name, value := range raw {
		var msgs []string
		if err := json.Unmarshal(value, &msgs); err != nil {
			continue
		}
		fields[name] = msgs
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// errorMessage pulls {"error": "..."} or {"detail": "..."} out of a body.
func errorMessage(body []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Detail
}
