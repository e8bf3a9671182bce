package librariesio

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/quibraries/quibraries/pkg/errors"
)

// Record is one JSON object from the API, passed through verbatim.
// Numbers are kept as [json.Number] so large integers survive intact.
type Record map[string]any

// Page is one ordered slice of a paginated result set.
type Page []Record

// Kind tells which shape a Result holds.
type Kind int

const (
	// KindSingle marks a response whose root was a JSON object.
	KindSingle Kind = iota + 1
	// KindList marks a response whose root was a JSON array of objects.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindList:
		return "list"
	}
	return "unknown"
}

// Result is either a single Record or an ordered list of Records.
// The shape is decided by the response, not by the operation called;
// use Kind, Single or List to tell them apart.
type Result struct {
	kind   Kind
	single Record
	list   []Record
}

// SingleResult wraps one record.
func SingleResult(r Record) Result { return Result{kind: KindSingle, single: r} }

// ListResult wraps an ordered list of records.
func ListResult(rs []Record) Result { return Result{kind: KindList, list: rs} }

// Kind returns the response shape. The zero Result has kind 0.
func (r Result) Kind() Kind { return r.kind }

// IsSingle reports whether the response was a single object.
func (r Result) IsSingle() bool { return r.kind == KindSingle }

// Single returns the record and true when the response was an object.
func (r Result) Single() (Record, bool) {
	return r.single, r.kind == KindSingle
}

// List returns the records and true when the response was an array.
func (r Result) List() ([]Record, bool) {
	return r.list, r.kind == KindList
}

// Records returns the result as a slice: one element for a single object,
// all elements in order for a list.
func (r Result) Records() []Record {
	switch r.kind {
	case KindSingle:
		return []Record{r.single}
	case KindList:
		return r.list
	}
	return nil
}

// Len returns the number of records.
func (r Result) Len() int { return len(r.Records()) }

// MarshalJSON re-encodes the result in its original shape. HTML characters
// in values are left unescaped.
func (r Result) MarshalJSON() ([]byte, error) {
	var v any
	switch r.kind {
	case KindSingle:
		v = r.single
	case KindList:
		if r.list == nil {
			return []byte("[]"), nil
		}
		v = r.list
	default:
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Normalize decodes a response body into a Result.
//
// A JSON object becomes a single record; a JSON array whose elements are
// all objects becomes a list in the same order. Anything else (invalid
// JSON, trailing data, scalars, null, or arrays holding non-objects) fails
// with [errors.ErrCodeMalformedResponse].
func Normalize(data []byte) (Result, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeMalformedResponse, err, "invalid JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return Result{}, errors.New(errors.ErrCodeMalformedResponse, "unexpected data after JSON value")
	}

	switch v := root.(type) {
	case map[string]any:
		return SingleResult(Record(v)), nil
	case []any:
		list := make([]Record, 0, len(v))
		for i, elem := range v {
			obj, ok := elem.(map[string]any)
			if !ok {
				return Result{}, errors.New(errors.ErrCodeMalformedResponse,
					"array element %d is %s, want object", i, jsonType(elem))
			}
			list = append(list, Record(obj))
		}
		return ListResult(list), nil
	default:
		return Result{}, errors.New(errors.ErrCodeMalformedResponse,
			"response root is %s, want object or array", jsonType(v))
	}
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return "unknown"
}
