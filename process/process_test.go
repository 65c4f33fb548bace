package process

import (
	"errors"
	"testing"

	"github.com/nihei9/hwpg/ir"
)

func TestProcessResolvesLiteralToCanonicalTokenRef(t *testing.T) {
	g := &ir.Grammar{
		TokenRules: []*ir.TokenRule{{Name: "COLON", Literal: ":"}},
		Rules: []*ir.Rule{
			{Name: "pair", Body: &ir.MultipartBody{Nodes: []ir.Node{
				&ir.TokenRef{Name: "STRING"},
				&ir.TokenLit{Literal: ":"},
				&ir.RuleRef{Name: "value"},
			}}},
		},
	}

	got, tokenNames, errs := Process(g)
	if len(errs) != 0 {
		t.Fatalf("errs = %v, want none", errs)
	}

	body := got.Rules[0].Body.(*ir.MultipartBody)
	ref, ok := body.Nodes[1].(*ir.TokenRef)
	if !ok {
		t.Fatalf("Nodes[1] = %T, want *ir.TokenRef", body.Nodes[1])
	}
	if ref.Name != "COLON" || !ref.HasReplaced || ref.ReplacedLit != ":" {
		t.Fatalf("ref = %+v, want resolved COLON", ref)
	}

	want := []string{"COLON", "STRING", "EOF", "ILLEGAL"}
	if !equalStrings(tokenNames, want) {
		t.Fatalf("tokenNames = %v, want %v", tokenNames, want)
	}
}

func TestProcessSharesCanonicalTokenRefAcrossOccurrences(t *testing.T) {
	g := &ir.Grammar{
		TokenRules: []*ir.TokenRule{{Name: "COMMA", Literal: ","}},
		Rules: []*ir.Rule{
			{Name: "list", Body: &ir.MultipartBody{Nodes: []ir.Node{
				&ir.TokenLit{Literal: ","},
				&ir.TokenLit{Literal: ","},
			}}},
		},
	}

	got, _, errs := Process(g)
	if len(errs) != 0 {
		t.Fatalf("errs = %v, want none", errs)
	}
	body := got.Rules[0].Body.(*ir.MultipartBody)
	if body.Nodes[0] != body.Nodes[1] {
		t.Fatalf("expected the same *ir.TokenRef instance to be shared")
	}
}

func TestProcessUnresolvedLiteralReportsError(t *testing.T) {
	g := &ir.Grammar{
		Rules: []*ir.Rule{
			{Name: "x", Body: &ir.TokenLit{Literal: "undeclared"}},
		},
	}

	_, _, errs := Process(g)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
	want := `ERROR: Literal "undeclared" does not have corresponding token rule`
	if errs[0].Error() != want {
		t.Fatalf("errs[0] = %q, want %q", errs[0].Error(), want)
	}
	if !errors.Is(errs[0], ErrUnresolvedLiteral) {
		t.Fatalf("errs[0] does not wrap ErrUnresolvedLiteral")
	}
}

func TestProcessTopLevelBindingReportsError(t *testing.T) {
	g := &ir.Grammar{
		Rules: []*ir.Rule{
			{Name: "x", Body: &ir.RuleRef{Binding: &ir.Binding{Name: "y"}, Name: "value"}},
		},
	}

	_, _, errs := Process(g)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
	want := "ERROR: Top level binding 'y' is not allowed"
	if errs[0].Error() != want {
		t.Fatalf("errs[0] = %q, want %q", errs[0].Error(), want)
	}
	if !errors.Is(errs[0], ErrTopLevelBinding) {
		t.Fatalf("errs[0] does not wrap ErrTopLevelBinding")
	}
}

func TestProcessAccumulatesMultipleErrors(t *testing.T) {
	g := &ir.Grammar{
		Rules: []*ir.Rule{
			{Name: "x", Body: &ir.TokenLit{Literal: "a"}},
			{Name: "y", Body: &ir.TokenLit{Literal: "b"}},
		},
	}

	_, _, errs := Process(g)
	if len(errs) != 2 {
		t.Fatalf("len(errs) = %d, want 2 (processing must not stop at the first error)", len(errs))
	}
}

func TestProcessNoTokenRulesStillAddsSpecialTokens(t *testing.T) {
	g := &ir.Grammar{Rules: []*ir.Rule{{Name: "value", Body: &ir.TokenRef{Name: "STRING"}}}}

	_, tokenNames, errs := Process(g)
	if len(errs) != 0 {
		t.Fatalf("errs = %v, want none", errs)
	}
	want := []string{"STRING", "EOF", "ILLEGAL"}
	if !equalStrings(tokenNames, want) {
		t.Fatalf("tokenNames = %v, want %v", tokenNames, want)
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	g := &ir.Grammar{
		TokenRules: []*ir.TokenRule{{Name: "COLON", Literal: ":"}},
		Rules: []*ir.Rule{
			{Name: "pair", Body: &ir.MultipartBody{Nodes: []ir.Node{
				&ir.TokenRef{Name: "STRING"},
				&ir.TokenLit{Literal: ":"},
				&ir.RuleRef{Name: "value"},
			}}},
		},
	}

	once, names1, errs1 := Process(g)
	twice, names2, errs2 := Process(once)

	if len(errs1) != 0 || len(errs2) != 0 {
		t.Fatalf("errs1=%v errs2=%v, want none", errs1, errs2)
	}
	if !equalStrings(names1, names2) {
		t.Fatalf("token names changed on reprocessing: %v != %v", names1, names2)
	}
	body1 := once.Rules[0].Body.(*ir.MultipartBody)
	body2 := twice.Rules[0].Body.(*ir.MultipartBody)
	if body1.Nodes[1] != body2.Nodes[1] {
		t.Fatalf("reprocessing a grammar with no TokenLit left should not construct a new TokenRef")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
