package codegen

import (
	"fmt"
	"testing"

	"github.com/nihei9/hwpg/ir"
	"github.com/nihei9/hwpg/sink"
)

// fakeSink records just enough to assert the ordering and naming
// guarantees in spec.md §4.4 and §8, without committing to any target
// language's rendering.
type fakeSink struct {
	started []string // StartFunction order
	ended   []string // EndFunction order: must be callees before callers
}

type fakeCtx struct{ name string }

func (s *fakeSink) StartFunction(name string, earlyRet bool, comment string) sink.FuncCtx {
	s.started = append(s.started, name)
	return &fakeCtx{name: name}
}

func (s *fakeSink) EndFunction(ctx sink.FuncCtx) {
	s.ended = append(s.ended, ctx.(*fakeCtx).name)
}

func (s *fakeSink) EmitTokenOnce(ctx sink.FuncCtx, name, comment string)        {}
func (s *fakeSink) EmitTokenZeroOrOnce(ctx sink.FuncCtx, name, comment string)  {}
func (s *fakeSink) EmitTokenZeroOrMore(ctx sink.FuncCtx, name, comment string)  {}
func (s *fakeSink) EmitTokenOnceOrMore(ctx sink.FuncCtx, name, comment string)  {}
func (s *fakeSink) EmitRuleOnce(ctx sink.FuncCtx, name, comment string)        {}
func (s *fakeSink) EmitRuleZeroOrOnce(ctx sink.FuncCtx, name, comment string)  {}
func (s *fakeSink) EmitRuleZeroOrMore(ctx sink.FuncCtx, name, comment string)  {}
func (s *fakeSink) EmitRuleOnceOrMore(ctx sink.FuncCtx, name, comment string)  {}

func (s *fakeSink) MakeFunctionName(parts sink.NameParts) string {
	if parts.Binding != "" {
		return fmt.Sprintf("_parse_%s_%s", parts.Rule, parts.Binding)
	}
	if parts.InnerIndex > 0 {
		return fmt.Sprintf("_parse_%s_inner%d", parts.Rule, parts.InnerIndex)
	}
	return "parse_" + parts.Rule
}

func (s *fakeSink) Render() string   { return "" }
func (s *fakeSink) Filename() string { return "" }

func TestGenerateSingleAtomRule(t *testing.T) {
	// value: STRING
	g := &ir.Grammar{Rules: []*ir.Rule{{Name: "value", Body: &ir.TokenRef{Name: "STRING"}}}}

	s := &fakeSink{}
	if err := New(s).Generate(g); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := []string{"parse_value"}
	assertNames(t, s.ended, want)
}

func TestGenerateMultipartRule(t *testing.T) {
	// pair: STRING COLON value
	g := &ir.Grammar{Rules: []*ir.Rule{{Name: "pair", Body: &ir.MultipartBody{Nodes: []ir.Node{
		&ir.TokenRef{Name: "STRING"}, &ir.TokenRef{Name: "COLON"}, &ir.RuleRef{Name: "value"},
	}}}}}

	s := &fakeSink{}
	if err := New(s).Generate(g); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	assertNames(t, s.ended, []string{"parse_pair"})
}

func TestGenerateAlternativesNeedsNoSubFunction(t *testing.T) {
	// value: dict | list | STRING | NUMBER
	g := &ir.Grammar{Rules: []*ir.Rule{{Name: "value", Body: &ir.Alternatives{Nodes: []ir.Node{
		&ir.RuleRef{Name: "dict"}, &ir.RuleRef{Name: "list"}, &ir.TokenRef{Name: "STRING"}, &ir.TokenRef{Name: "NUMBER"},
	}}}}}

	s := &fakeSink{}
	if err := New(s).Generate(g); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// every alternative is a bare atom: no sub-function is needed.
	assertNames(t, s.ended, []string{"parse_value"})
}

func TestGenerateNestedConstructsSpawnInnerFunctionsInCalleeFirstOrder(t *testing.T) {
	// list: LBRACKET [value (COMMA value)*] RBRACKET
	commaValue := &ir.MultipartBody{Nodes: []ir.Node{&ir.TokenRef{Name: "COMMA"}, &ir.RuleRef{Name: "value"}}}
	optBody := &ir.MultipartBody{Nodes: []ir.Node{
		&ir.RuleRef{Name: "value"},
		&ir.ZeroOrMore{Node: commaValue},
	}}
	listBody := &ir.MultipartBody{Nodes: []ir.Node{
		&ir.TokenRef{Name: "LBRACKET"},
		&ir.ZeroOrOne{Node: optBody, Brackets: true},
		&ir.TokenRef{Name: "RBRACKET"},
	}}
	g := &ir.Grammar{Rules: []*ir.Rule{{Name: "list", Body: listBody}}}

	s := &fakeSink{}
	if err := New(s).Generate(g); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := []string{"_parse_list_inner2", "_parse_list_inner1", "parse_list"}
	assertNames(t, s.ended, want)
}

func TestGenerateBoundSubNodeUsesBindingName(t *testing.T) {
	// x: items=(A B)
	body := &ir.MultipartBody{
		Binding: &ir.Binding{Name: "items"},
		Nodes:   []ir.Node{&ir.TokenRef{Name: "A"}, &ir.TokenRef{Name: "B"}},
	}
	g := &ir.Grammar{Rules: []*ir.Rule{{Name: "x", Body: body}}}

	s := &fakeSink{}
	// Simulate the shape after a processor pass that only strips the
	// now-meaningless top-level binding check; a bound multipart body can
	// still appear nested one level down.
	wrapped := &ir.Grammar{Rules: []*ir.Rule{{Name: "x", Body: &ir.MultipartBody{Nodes: []ir.Node{
		body, &ir.TokenRef{Name: "C"},
	}}}}}
	_ = g

	if err := New(s).Generate(wrapped); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := []string{"_parse_x_items", "parse_x"}
	assertNames(t, s.ended, want)
}

func TestGenerateFatalOnSurvivingTokenLit(t *testing.T) {
	g := &ir.Grammar{Rules: []*ir.Rule{{Name: "x", Body: &ir.TokenLit{Literal: "oops"}}}}

	s := &fakeSink{}
	err := New(s).Generate(g)
	if err == nil {
		t.Fatal("expected a StructurallyUnknownNodeError, got nil")
	}
	if _, ok := err.(*StructurallyUnknownNodeError); !ok {
		t.Fatalf("err = %T, want *StructurallyUnknownNodeError", err)
	}
}

func TestGenerateEmitsRulesInInputOrder(t *testing.T) {
	g := &ir.Grammar{Rules: []*ir.Rule{
		{Name: "a", Body: &ir.RuleRef{Name: "b"}},
		{Name: "b", Body: &ir.TokenRef{Name: "STRING"}},
	}}

	s := &fakeSink{}
	if err := New(s).Generate(g); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// rules are emitted in input order even though "a" calls "b" — only
	// sub-functions *within* a rule are forced callee-first.
	assertNames(t, s.ended, []string{"parse_a", "parse_b"})
}

func assertNames(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
