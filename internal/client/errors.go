// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNotFound matches (via errors.Is) any APIError with status 404.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument wraps parameter checks that fail before a request is sent.
	ErrInvalidArgument = errors.New("invalid argument")
)

// APIError is a response with a non-2xx status, or a 2xx acknowledgement
// whose success flag is false.
type APIError struct {
	// Op is the client operation, e.g. "getArticleDetail".
	Op         string
	Method     string
	URL        string
	StatusCode int

	// Message is the server-supplied explanation, if one could be extracted.
	Message string

	// Body is the raw response body.
	Body []byte
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: backend returned HTTP %d", e.Op, e.StatusCode)
	if e.StatusCode >= 200 && e.StatusCode < 300 {
		msg = fmt.Sprintf("%s: backend reported failure", e.Op)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// ContractError is a 2xx response whose payload does not decode into, or
// does not satisfy, the expected contract.
type ContractError struct {
	Op  string
	Err error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: response violates contract: %v", e.Op, e.Err)
}

func (e *ContractError) Unwrap() error { return e.Err }

const maxMessageLen = 200

// messageFromBody extracts an error explanation from a response body. The
// backend answers with {"message": ...}, {"error": ...}, or plain text.
func messageFromBody(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
		return ""
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return truncate(s)
	}
	if utf8.Valid(body) {
		return truncate(strings.TrimSpace(string(body)))
	}
	return ""
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxMessageLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxMessageLen-3]) + "..."
}
