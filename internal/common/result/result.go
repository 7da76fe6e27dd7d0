// Package result adapts fallible operations into operations that never fail:
// every call settles to a Result holding either data or a display message.
package result

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Result is exactly one of a success payload or an error message.
// The zero value is not a valid Result; build one with Ok or Err.
type Result[T any] struct {
	data T
	err  string
	ok   bool
}

// Ok returns a successful Result carrying v.
func Ok[T any](v T) Result[T] {
	return Result[T]{data: v, ok: true}
}

// Err returns a failed Result carrying msg. An empty msg is replaced so the
// error side is never empty.
func Err[T any](msg string) Result[T] {
	if msg == "" {
		msg = "unknown error"
	}
	return Result[T]{err: msg}
}

func (r Result[T]) IsOk() bool { return r.ok }

// Data returns the payload and true for an Ok result.
func (r Result[T]) Data() (T, bool) {
	return r.data, r.ok
}

// Error returns the message and true for an Err result.
func (r Result[T]) Error() (string, bool) {
	return r.err, !r.ok
}

// MustData returns the payload or panics on an Err result. Intended for tests
// and template code paths that already branched on IsOk.
func (r Result[T]) MustData() T {
	if !r.ok {
		panic(fmt.Sprintf("result: MustData on error result: %s", r.err))
	}
	return r.data
}

// ErrorMessage returns the message, or "" for an Ok result.
func (r Result[T]) ErrorMessage() string {
	if r.ok {
		return ""
	}
	return r.err
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *string         `json:"error"`
}

// MarshalJSON writes {"data": ..., "error": null} or {"data": null, "error": "..."}.
// A nil slice, map or pointer payload is written as an empty value so an Ok
// result never has a null data side.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if !r.ok {
		msg := r.err
		return json.Marshal(envelope{Data: json.RawMessage("null"), Error: &msg})
	}
	data, err := json.Marshal(r.data)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		if data, err = emptyJSON(reflect.TypeOf((*T)(nil)).Elem()); err != nil {
			return nil, err
		}
	}
	return json.Marshal(envelope{Data: data})
}

// emptyJSON returns the JSON of the empty, non-null value of t.
func emptyJSON(t reflect.Type) ([]byte, error) {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return []byte("[]"), nil
	case reflect.Ptr:
		elem := t.Elem()
		switch elem.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
			return emptyJSON(elem)
		}
		data, err := json.Marshal(reflect.Zero(elem).Interface())
		if err != nil || string(data) != "null" {
			return data, err
		}
	}
	return []byte("{}"), nil
}

// UnmarshalJSON accepts the envelope written by MarshalJSON. Envelopes with both
// sides set or both null are rejected.
func (r *Result[T]) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data  json.RawMessage `json:"data"`
		Error *string         `json:"error"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	hasData := len(raw.Data) > 0 && string(raw.Data) != "null"
	hasErr := raw.Error != nil

	switch {
	case hasErr && hasData:
		return fmt.Errorf("result: both data and error are set")
	case hasErr:
		*r = Err[T](*raw.Error)
		return nil
	case hasData:
		var v T
		if err := json.Unmarshal(raw.Data, &v); err != nil {
			return err
		}
		*r = Ok(v)
		return nil
	default:
		return fmt.Errorf("result: neither data nor error is set")
	}
}
