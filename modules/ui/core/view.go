package core

import (
	"encoding/json"
)

// View is the tri-state envelope every asynchronous screen binds to.
// By convention only one of Loader, Data or Error is the active state, but
// consumers must also handle all three being absent (initial state) and
// Data persisting alongside Loader or Error while a refresh is in flight.
type View[T any] struct {
	Loader bool
	Data   *T
	Error  error
}

// Loading returns an in-flight envelope with no data
func Loading[T any]() View[T] {
	return View[T]{Loader: true}
}

// Loaded returns a successful envelope
func Loaded[T any](data T) View[T] {
	return View[T]{Data: &data}
}

// Failed returns a failed envelope with no data
func Failed[T any](err error) View[T] {
	return View[T]{Error: err}
}

// Refreshing returns a loading envelope that keeps prev's data on display
func Refreshing[T any](prev View[T]) View[T] {
	return View[T]{Loader: true, Data: prev.Data}
}

// FailedWith returns a failed envelope that keeps prev's data on display
func FailedWith[T any](prev View[T], err error) View[T] {
	return View[T]{Data: prev.Data, Error: err}
}

// HasData reports whether a successful result is available
func (v View[T]) HasData() bool { return v.Data != nil }

// IsEmpty reports the initial state: no loader, no data, no error
func (v View[T]) IsEmpty() bool {
	return !v.Loader && v.Data == nil && v.Error == nil
}

// Value returns the data or the zero value when absent
func (v View[T]) Value() T {
	if v.Data == nil {
		var zero T
		return zero
	}
	return *v.Data
}

// viewJSON is the wire shape pushed to browser clients
type viewJSON[T any] struct {
	Loader bool   `json:"loader,omitempty"`
	Data   *T     `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// MarshalJSON renders the error as its message
func (v View[T]) MarshalJSON() ([]byte, error) {
	out := viewJSON[T]{Loader: v.Loader, Data: v.Data}
	if v.Error != nil {
		out.Error = v.Error.Error()
	}
	return json.Marshal(out)
}
