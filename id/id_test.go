package id_test

import (
	"strings"
	"testing"

	"github.com/flingworks/fling/id"
)

func TestNew_HasPrefix(t *testing.T) {
	taskID := id.NewTaskID()
	if taskID.IsNil() {
		t.Fatal("NewTaskID returned nil ID")
	}
	if got := taskID.Prefix(); got != id.PrefixTask {
		t.Errorf("Prefix() = %q, want %q", got, id.PrefixTask)
	}
	if !strings.HasPrefix(taskID.String(), "task_") {
		t.Errorf("String() = %q, want task_ prefix", taskID.String())
	}
}

func TestNew_Unique(t *testing.T) {
	a := id.NewTaskID()
	b := id.NewTaskID()
	if a.String() == b.String() {
		t.Fatalf("two generated IDs are equal: %s", a)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	orig := id.NewDispatcherID()

	parsed, err := id.Parse(orig.String())
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", orig, err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("round trip: got %q, want %q", parsed, orig)
	}
	if parsed.Prefix() != id.PrefixDispatcher {
		t.Errorf("Prefix() = %q, want %q", parsed.Prefix(), id.PrefixDispatcher)
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := id.Parse(""); err == nil {
		t.Fatal("Parse(\"\") succeeded, want error")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := id.Parse("not a typeid!!"); err == nil {
		t.Fatal("Parse of garbage succeeded, want error")
	}
}

func TestParseWithPrefix_Mismatch(t *testing.T) {
	dspID := id.NewDispatcherID()

	if _, err := id.ParseTaskID(dspID.String()); err == nil {
		t.Fatal("ParseTaskID accepted a dsp-prefixed ID")
	}
}

func TestNil(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Error("Nil.IsNil() = false")
	}
	if got := id.Nil.String(); got != "" {
		t.Errorf("Nil.String() = %q, want empty", got)
	}
	if got := id.Nil.Prefix(); got != "" {
		t.Errorf("Nil.Prefix() = %q, want empty", got)
	}
}

func TestMarshalText_RoundTrip(t *testing.T) {
	orig := id.NewTaskID()

	data, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}

	var decoded id.ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if decoded.String() != orig.String() {
		t.Errorf("round trip: got %q, want %q", decoded, orig)
	}
}

func TestUnmarshalText_Empty(t *testing.T) {
	var decoded id.ID
	if err := decoded.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil) error: %v", err)
	}
	if !decoded.IsNil() {
		t.Error("expected Nil ID from empty text")
	}
}
