package protocol_test

import (
	"testing"

	"github.com/casky-db/casky/internal/protocol"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantVerb string
		wantRest string
	}{
		{"simple put", "PUT foo bar", "PUT", "foo bar"},
		{"lowercase verb", "get foo", "GET", "foo"},
		{"mixed case verb", "GeT foo", "GET", "foo"},
		{"trailing cr", "DEL foo\r", "DEL", "foo"},
		{"no args", "STATS", "STATS", ""},
		{"empty line", "", "", ""},
		{"whitespace only", "   ", "", ""},
		{"value with spaces", "PUT k a value with spaces", "PUT", "k a value with spaces"},
		{"leading whitespace", "  PUT k v", "PUT", "k v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verb, rest := protocol.ParseLine(tt.line)
			if verb != tt.wantVerb {
				t.Errorf("verb = %q, want %q", verb, tt.wantVerb)
			}
			if rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}

func TestSplitKeyValue(t *testing.T) {
	tests := []struct {
		name      string
		rest      string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{"key and value", "foo bar", "foo", "bar", true},
		{"value with spaces", "foo bar baz", "foo", "bar baz", true},
		{"key only", "foo", "foo", "", true},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, ok := protocol.SplitKeyValue(tt.rest)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if key != tt.wantKey || value != tt.wantValue {
				t.Errorf("SplitKeyValue(%q) = (%q, %q), want (%q, %q)", tt.rest, key, value, tt.wantKey, tt.wantValue)
			}
		})
	}
}

func TestSplitKey(t *testing.T) {
	if key, ok := protocol.SplitKey("foo"); !ok || key != "foo" {
		t.Errorf("SplitKey(foo) = (%q, %v), want (foo, true)", key, ok)
	}
	if _, ok := protocol.SplitKey(""); ok {
		t.Error("SplitKey(\"\") = ok, want rejected")
	}
	if _, ok := protocol.SplitKey("foo bar"); ok {
		t.Error("SplitKey(\"foo bar\") = ok, want rejected (trailing garbage)")
	}
}
