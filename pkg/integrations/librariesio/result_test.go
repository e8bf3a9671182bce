package librariesio

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/quibraries/quibraries/pkg/errors"
)

func TestNormalizeObject(t *testing.T) {
	res, err := Normalize([]byte(`{"a":1,"name":"requests","big":12345678901234567890}`))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if res.Kind() != KindSingle || !res.IsSingle() {
		t.Fatalf("Kind() = %v, want single", res.Kind())
	}

	rec, ok := res.Single()
	if !ok {
		t.Fatal("Single() ok = false")
	}
	if rec["a"] != json.Number("1") {
		t.Errorf(`rec["a"] = %#v, want json.Number("1")`, rec["a"])
	}
	if rec["big"] != json.Number("12345678901234567890") {
		t.Errorf(`rec["big"] = %#v, large integers must be preserved`, rec["big"])
	}
	if _, ok := res.List(); ok {
		t.Error("List() ok = true for a single result")
	}
	if res.Len() != 1 {
		t.Errorf("Len() = %d, want 1", res.Len())
	}
}

func TestNormalizeList(t *testing.T) {
	res, err := Normalize([]byte(`[{"name":"pandas"},{"name":"numpy"},{"name":"scipy"}]`))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	list, ok := res.List()
	if !ok {
		t.Fatalf("Kind() = %v, want list", res.Kind())
	}

	want := []string{"pandas", "numpy", "scipy"}
	if len(list) != len(want) {
		t.Fatalf("len = %d, want %d", len(list), len(want))
	}
	for i, name := range want {
		if list[i]["name"] != name {
			t.Errorf("list[%d].name = %v, want %s", i, list[i]["name"], name)
		}
	}
}

func TestNormalizeEmptyList(t *testing.T) {
	res, err := Normalize([]byte(" [] \n"))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	list, ok := res.List()
	if !ok || len(list) != 0 {
		t.Errorf("List() = %v, %v; want empty list", list, ok)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", ``, "invalid JSON"},
		{"scalar string", `"scalar"`, "string"},
		{"number", `42`, "number"},
		{"null", `null`, "null"},
		{"boolean", `true`, "boolean"},
		{"array of scalars", `[{"a":1}, 2]`, "element 1"},
		{"nested array", `[[]]`, "array"},
		{"invalid json", `{"a":`, "invalid JSON"},
		{"trailing data", `{"a":1} {"b":2}`, "after JSON value"},
		{"html error page", `<html>502</html>`, "invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]byte(tt.body))
			if !errors.Is(err, errors.ErrCodeMalformedResponse) {
				t.Fatalf("Normalize(%q) error = %v, want MALFORMED_RESPONSE", tt.body, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Normalize(%q) error = %q, want it to mention %q", tt.body, err, tt.want)
			}
		})
	}
}

func TestResultRecords(t *testing.T) {
	single := SingleResult(Record{"k": "v"})
	if got := single.Records(); len(got) != 1 || got[0]["k"] != "v" {
		t.Errorf("Records() = %v", got)
	}

	list := ListResult([]Record{{"i": 1}, {"i": 2}})
	if got := list.Records(); len(got) != 2 {
		t.Errorf("Records() len = %d, want 2", len(got))
	}

	var zero Result
	if zero.Records() != nil || zero.Len() != 0 {
		t.Error("zero Result should have no records")
	}
}

func TestResultMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"single", SingleResult(Record{"name": "six"}), `{"name":"six"}`},
		{"list", ListResult([]Record{{"name": "a"}, {"name": "b"}}), `[{"name":"a"},{"name":"b"}]`},
		{"nil list", ListResult(nil), `[]`},
		{"zero", Result{}, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.res)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNormalizePreservesNumbersOnReencode(t *testing.T) {
	in := `{"id":9007199254740993,"score":1.50}`
	res, err := Normalize([]byte(in))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	out, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(out) != in {
		t.Errorf("re-encoded = %s, want %s", out, in)
	}
}

func TestKindString(t *testing.T) {
	if KindSingle.String() != "single" || KindList.String() != "list" || Kind(0).String() != "unknown" {
		t.Error("Kind.String() mismatch")
	}
}
