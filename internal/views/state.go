// Package views turns gateway calls into view state: fetch, keep the result
// or a failure notice, and filter/sort what was fetched.
package views

import (
	"context"
	"errors"
	"reflect"

	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// Status is the lifecycle of one fetched resource.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Placeholder texts shown instead of data.
const (
	NoticeEmpty  = "No data found"
	NoticeFailed = "Failed to load"
)

// Resource is the view state of one fetch.
type Resource[T any] struct {
	Status Status
	Data   T
	Err    error
	Notice string
}

// Loading reports whether the fetch is still in flight.
func (r Resource[T]) Loading() bool {
	return r.Status == StatusLoading
}

// Message is the text a view should surface for the current state: the
// placeholder for empty data, or the normalized gateway message on failure.
func (r Resource[T]) Message() string {
	if r.Status != StatusFailed {
		return r.Notice
	}
	var gwErr *gateway.Error
	if errors.As(r.Err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	return r.Notice
}

// Load runs fetch and classifies the outcome. Empty slices and maps become
// StatusEmpty; failures keep the error and the "Failed to load" notice.
func Load[T any](ctx context.Context, fetch func(context.Context) (T, error)) Resource[T] {
	data, err := fetch(ctx)
	if err != nil {
		var zero T
		return Resource[T]{Status: StatusFailed, Data: zero, Err: err, Notice: NoticeFailed}
	}
	if isEmpty(data) {
		return Resource[T]{Status: StatusEmpty, Data: data, Notice: NoticeEmpty}
	}
	return Resource[T]{Status: StatusReady, Data: data}
}

// Reload keeps the previous data when the new fetch fails, so a failed
// refresh does not blank a populated view.
func Reload[T any](ctx context.Context, prev Resource[T], fetch func(context.Context) (T, error)) Resource[T] {
	next := Load(ctx, fetch)
	if next.Status == StatusFailed && (prev.Status == StatusReady || prev.Status == StatusEmpty) {
		next.Data = prev.Data
	}
	return next
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
