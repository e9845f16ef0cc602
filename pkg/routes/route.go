package routes

import (
	"strings"
	"time"
)

// Method is an HTTP method as reported by route discovery.
type Method string

// Known methods. Anything else is reported as MethodOther.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
	MethodOther  Method = "OTHER"
)

// ParseMethod maps s to a Method, ignoring case and surrounding space.
func ParseMethod(s string) Method {
	switch m := Method(strings.ToUpper(strings.TrimSpace(s))); m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return m
	}
	return MethodOther
}

// Status is the outcome of the last check of a route.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ParseStatus maps s to a Status. Empty and unknown values are pending.
func ParseStatus(s string) Status {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusSuccess, StatusError:
		return st
	}
	return StatusPending
}

// Route is one discovered HTTP route.
type Route struct {
	Method         Method
	Path           string
	Status         Status
	ResponseTimeMs *int64     // nil when never measured
	LastCheckedAt  *time.Time // nil when never checked
}

// Checked reports whether the route has a check timestamp.
func (r Route) Checked() bool { return r.LastCheckedAt != nil }
