// Package errors provides RFC 7807 Problem Details for HTTP APIs.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem body (https://www.rfc-editor.org/rfc/rfc7807).
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Extensions carries problem specific members such as retryAfterSeconds.
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy carrying the occurrence specific message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with one more extension member; the receiver's map is not shared.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

// Problem type URIs, relative unless the responder has a base URI.
const (
	TypeBadRequest   = "/problems/bad-request"
	TypeUnauthorized = "/problems/unauthorized"
	TypeForbidden    = "/problems/forbidden"
	TypeNotFound     = "/problems/not-found"
	TypeConflict     = "/problems/conflict"
	TypeRateLimited  = "/problems/rate-limited"
	TypeInternal     = "/problems/internal-error"
	TypeUnavailable  = "/problems/upstream-unavailable"
)

func problem(typ, title string, status int) ProblemDetail {
	return ProblemDetail{Type: typ, Title: title, Status: status}
}

// Templates for every status the storefront API answers with.
var (
	ErrBadRequest          = problem(TypeBadRequest, "Bad Request", http.StatusBadRequest)
	ErrUnauthorized        = problem(TypeUnauthorized, "Unauthorized", http.StatusUnauthorized)
	ErrForbidden           = problem(TypeForbidden, "Forbidden", http.StatusForbidden)
	ErrNotFound            = problem(TypeNotFound, "Resource Not Found", http.StatusNotFound)
	ErrConflict            = problem(TypeConflict, "Conflict", http.StatusConflict)
	ErrTooManyRequests     = problem(TypeRateLimited, "Too Many Requests", http.StatusTooManyRequests)
	ErrInternal            = problem(TypeInternal, "Internal Server Error", http.StatusInternalServerError)
	ErrUpstreamUnavailable = problem(TypeUnavailable, "Upstream Unavailable", http.StatusServiceUnavailable)
)
