package pipeline

import (
	"strings"
	"testing"

	"github.com/nihei9/hwpg/config"
	"github.com/nihei9/hwpg/rawtree"
)

func jsonGrammar() *rawtree.Grammar {
	atom := func(kind rawtree.AtomKind, value string) *rawtree.Part {
		return &rawtree.Part{Atom: &rawtree.Atom{Kind: kind, Value: value}}
	}
	elems := func(parts ...*rawtree.Part) []*rawtree.BodyElem {
		out := make([]*rawtree.BodyElem, len(parts))
		for i, p := range parts {
			out[i] = &rawtree.BodyElem{Part: p}
		}
		return out
	}

	return &rawtree.Grammar{
		TokenRules: []*rawtree.TokenRule{
			{Name: "COLON", Literal: `":"`},
		},
		Rules: []*rawtree.Rule{
			{Name: "pair", Body: elems(
				atom(rawtree.AtomTokenName, "STRING"),
				atom(rawtree.AtomTokenLit, `":"`),
				atom(rawtree.AtomRuleName, "value"),
			)},
			{Name: "value", Body: elems(
				atom(rawtree.AtomTokenName, "STRING"),
			)},
		},
	}
}

func TestRunProducesAllOutputFiles(t *testing.T) {
	cfg := config.Default()
	cfg.PackageName = "jsongram"

	res, errs := Run(jsonGrammar(), cfg)
	if len(errs) != 0 {
		t.Fatalf("Run() errs = %v, want none", errs)
	}

	for _, want := range []string{"jsongram_parser.go", "jsongram_tokens.go", "doc.go", "hwpgrt/token.go", "hwpgrt/stream.go"} {
		if _, ok := res.Files[want]; !ok {
			t.Errorf("missing output file %q", want)
		}
	}

	parserSrc := string(res.Files["jsongram_parser.go"])
	if !strings.Contains(parserSrc, "func parse_pair(") || !strings.Contains(parserSrc, "func parse_value(") {
		t.Fatalf("parser source missing expected functions:\n%s", parserSrc)
	}

	tokensSrc := string(res.Files["jsongram_tokens.go"])
	for _, want := range []string{"STRING", "COLON", "EOF", "ILLEGAL"} {
		if !strings.Contains(tokensSrc, want) {
			t.Errorf("tokens source missing %q", want)
		}
	}
}

func TestRunReportsSemanticErrorsWithoutEmitting(t *testing.T) {
	g := jsonGrammar()
	// drop the COLON token rule so the literal in "pair" can't resolve.
	g.TokenRules = nil

	cfg := config.Default()
	res, errs := Run(g, cfg)
	if len(errs) == 0 {
		t.Fatal("expected an unresolved-literal error")
	}
	if res != nil {
		t.Fatal("expected no Result when semantic errors were found")
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TargetLanguage = "rust"

	_, errs := Run(jsonGrammar(), cfg)
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want exactly one config error", errs)
	}
}

func TestRunWiresMemoizationIntoGeneratedParser(t *testing.T) {
	cfg := config.Default()
	cfg.PackageName = "jsongram"
	cfg.Memoize = true

	res, errs := Run(jsonGrammar(), cfg)
	if len(errs) != 0 {
		t.Fatalf("Run() errs = %v, want none", errs)
	}

	parserSrc := string(res.Files["jsongram_parser.go"])
	for _, want := range []string{"memo *hwpgrt.Memo", "memo.Lookup(", "memo.Store(", "hwpgrt.NewMemo()"} {
		if !strings.Contains(parserSrc, want) {
			t.Fatalf("parser source missing %q with Memoize enabled:\n%s", want, parserSrc)
		}
	}
}

type jsonActions struct{}

func (jsonActions) Pair() (string, string) {
	return `&pairNode{}`, "*pairNode"
}

func (jsonActions) Value() (string, string) {
	return `&valueNode{}`, "*valueNode"
}

func TestRunWiresParserActionsIntoGeneratedParser(t *testing.T) {
	cfg := config.Default()
	cfg.PackageName = "jsongram"
	cfg.ParserActions = jsonActions{}

	res, errs := Run(jsonGrammar(), cfg)
	if len(errs) != 0 {
		t.Fatalf("Run() errs = %v, want none", errs)
	}

	parserSrc := string(res.Files["jsongram_parser.go"])
	for _, want := range []string{"*pairNode", "&pairNode{}", "*valueNode", "&valueNode{}"} {
		if !strings.Contains(parserSrc, want) {
			t.Fatalf("parser source missing %q with ParserActions set:\n%s", want, parserSrc)
		}
	}
}

func TestRunReportsMissingActionWhenParseTreeDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.PackageName = "jsongram"
	cfg.MakeParseTree = false
	cfg.ParserActions = jsonActions{} // has Pair/Value, but not Extra

	g := jsonGrammar()
	g.Rules = append(g.Rules, &rawtree.Rule{Name: "extra", Body: []*rawtree.BodyElem{
		{Part: &rawtree.Part{Atom: &rawtree.Atom{Kind: rawtree.AtomTokenName, Value: "STRING"}}},
	}})

	_, errs := Run(g, cfg)
	if len(errs) == 0 {
		t.Fatal("expected a missing-action error when make_parse_tree is disabled and no action matches")
	}
}
