package kv

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StatusError reports a non-2xx HTTP response from the Cloudflare API.
type StatusError struct {
	StatusCode int
	Status     string // status text without the numeric code, e.g. "Not Found"
}

func (e *StatusError) Error() string {
	return e.Status
}

// APIError reports a logical failure inside an HTTP-successful response,
// i.e. a v4 envelope with success=false.
type APIError struct {
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return "unknown API error"
	}
	return strings.Join(e.Messages, "; ")
}

// apiMessage is one entry of the v4 envelope's errors array. The API emits
// objects with code and message; plain strings are accepted too.
type apiMessage struct {
	Code    int
	Message string
}

func (m *apiMessage) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &m.Message)
	}
	var obj struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	m.Code = obj.Code
	m.Message = obj.Message
	return nil
}

func (m apiMessage) String() string {
	if m.Code != 0 {
		return fmt.Sprintf("%s (code %d)", m.Message, m.Code)
	}
	return m.Message
}
