package error

import (
	"errors"
	"strings"
	"testing"
)

func TestSpecErrorFormatsWithSourceAndRow(t *testing.T) {
	e := &SpecError{Cause: errors.New("boom"), SourceName: "grammar.json", Row: 12}
	want := "grammar.json:12: error: boom"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSpecErrorFormatsWithoutPosition(t *testing.T) {
	e := &SpecError{Cause: errors.New("boom")}
	want := "error: boom"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSpecErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	e := &SpecError{Cause: cause}
	if !errors.Is(e, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestSpecErrorsJoinsOnePerLine(t *testing.T) {
	es := SpecErrors{
		{Cause: errors.New("first")},
		{Cause: errors.New("second")},
	}
	got := es.Error()
	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Fatalf("Error() = %q, missing an entry", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Fatalf("Error() = %q, want exactly one newline separating two entries", got)
	}
}

func TestFromErrorsAttachesSourceName(t *testing.T) {
	es := FromErrors([]error{errors.New("a"), errors.New("b")}, "stdin")
	if len(es) != 2 {
		t.Fatalf("len(es) = %d, want 2", len(es))
	}
	for _, e := range es {
		if e.SourceName != "stdin" {
			t.Errorf("e.SourceName = %q, want %q", e.SourceName, "stdin")
		}
	}
}
