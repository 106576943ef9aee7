package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/querl/querl/pkg/value"
)

func TestReadValueArg(t *testing.T) {
	testCases := []struct {
		arg  string
		want value.Value
	}{
		{"42", value.OfInt(42)},
		{"-3", value.OfInt(-3)},
		{"2.5", value.OfFloat(2.5)},
		{"true", value.OfBool(true)},
		{"hello", value.OfString("hello")},
	}
	for _, tc := range testCases {
		if got := readValueArg(tc.arg); got != tc.want {
			t.Errorf("readValueArg(%q) = %v, want %v", tc.arg, got, tc.want)
		}
	}
}

func TestBuiltinRegistry(t *testing.T) {
	registry := newRegistry()

	result, err := registry.Eval(value.OfInt(2), "square/add-10")
	if err != nil {
		t.Fatal(err)
	}
	if result != value.OfInt(14) {
		t.Errorf("eval = %v, want 14", result)
	}

	result, err = registry.Eval(value.OfString("  hi "), "trim/upper/append-~_there")
	if err != nil {
		t.Fatal(err)
	}
	if result != value.OfString("HI-there") {
		t.Errorf("eval = %v, want %q", result, "HI-there")
	}
}

func TestRunFormats(t *testing.T) {
	var buf bytes.Buffer
	if err := runFormats(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, name := range []string{"json", "yaml", "msgpack", "txt"} {
		if !strings.Contains(out, name) {
			t.Errorf("formats output missing %q:\n%s", name, out)
		}
	}
}
