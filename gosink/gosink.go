// Package gosink is the Go-target implementation of sink.Sink: it turns
// the generator's StartFunction/Emit*/EndFunction stream into Go source
// text, then normalizes the assembled file the same way the teacher does
// (driver/template.go: text/template for assembly, then go/parser.ParseFile
// + go/format.Node to reformat and validate the result is at least
// syntactically well-formed Go).
package gosink

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"strings"
	"text/template"

	"github.com/nihei9/hwpg/actions"
	"github.com/nihei9/hwpg/config"
	"github.com/nihei9/hwpg/sink"
)

// Sink accumulates one rendered Go function per StartFunction/EndFunction
// pair, in EndFunction call order — which codegen.Generator guarantees is
// always callees before callers within a rule.
type Sink struct {
	packageName string
	cfg         *config.Config
	funcs       []string

	startFuncName   string
	startReturnType string

	// firstErr is the first *actions.MissingActionError surfaced by a
	// required-but-absent action (Config.MakeParseTree false). codegen
	// itself never inspects this; pipeline.Run checks Err() after
	// Generate returns, matching spec.md §7's "no partial emission" rule.
	firstErr error
}

// New returns a Sink that renders parser functions into package
// packageName. cfg may be nil, which behaves like a Config with no user
// actions and memoization disabled.
func New(packageName string, cfg *config.Config) *Sink {
	return &Sink{packageName: packageName, cfg: cfg}
}

// Err returns the first error Lookup surfaced while resolving a required
// user action, or nil if none did.
func (s *Sink) Err() error {
	return s.firstErr
}

func (s *Sink) memoize() bool {
	return s.cfg != nil && s.cfg.Memoize
}

// funcCtx is the per-function accumulator handed back by StartFunction.
// counter backs freshVar, grounded on the original source's _new_var:
// a monotonically increasing suffix so every intermediate in one function
// gets a distinct name regardless of how many constructs it walks.
type funcCtx struct {
	name     string
	earlyRet bool
	comment  string
	body     strings.Builder
	counter  int

	// memoize is true whenever the Sink threads a *hwpgrt.Memo parameter
	// through every function signature and call site in this file — a
	// file-wide decision driven by Config.Memoize, so every call stays
	// consistent regardless of which function is being called.
	memoize bool
	// cacheable is memoize narrowed to functions that actually read/write
	// the cache: hwpgrt.Memo stores a *hwpgrt.Node, so a function whose
	// action overrides its return type to something else cannot be
	// memoized even when memoize is on — it still accepts the memo
	// parameter (for a uniform call signature) but never touches it.
	cacheable bool

	// useAction is true when actions.Lookup found a method on
	// Config.ParserActions named after this function; actionSnippet and
	// returnType then override the default &hwpgrt.Node{...} construction
	// and this function's declared return type (spec.md §4.7).
	useAction     bool
	actionSnippet string
	returnType    string
}

func (fc *funcCtx) freshVar(prefix string) string {
	fc.counter++
	return fmt.Sprintf("%s%d", prefix, fc.counter)
}

// callArgs is the argument list a call to this function (or any other
// function sharing the same Sink's memoize setting) must pass.
func (fc *funcCtx) callArgs() string {
	if fc.memoize {
		return "ts, memo"
	}
	return "ts"
}

// buildNode is the expression this function should return when it has
// freshly assembled a node from childrenExpr (a []*hwpgrt.Node
// expression). A resolved user action overrides this entirely: its
// snippet decides what the function returns instead of the default parse
// tree.
func (fc *funcCtx) buildNode(childrenExpr string) string {
	if fc.useAction {
		return fc.actionSnippet
	}
	return fmt.Sprintf("&hwpgrt.Node{RuleName: %q, Children: %s}", fc.name, childrenExpr)
}

// emitSuccess writes a return statement for a successful match, recording
// the result in memo first when this function is cacheable.
func (fc *funcCtx) emitSuccess(w *strings.Builder, childrenExpr string) {
	node := fc.buildNode(childrenExpr)
	if !fc.cacheable {
		fmt.Fprintf(w, "\treturn %s, nil\n", node)
		return
	}
	fmt.Fprintf(w, "\tresult := %s\n\tmemo.Store(%q, mark, result, ts.Mark())\n\treturn result, nil\n", node, fc.name)
}

// emitFail writes the "nothing matched here" exit: reset the cursor and
// return a nil result, recording the failure in memo first when this
// function is cacheable, so a second call at the same position short-
// circuits instead of re-walking the grammar.
func (fc *funcCtx) emitFail(w *strings.Builder) {
	if !fc.cacheable {
		w.WriteString("\tts.Reset(mark)\n\treturn nil, nil\n")
		return
	}
	fmt.Fprintf(w, "\tmemo.Store(%q, mark, nil, mark)\n\tts.Reset(mark)\n\treturn nil, nil\n", fc.name)
}

func (s *Sink) StartFunction(name string, earlyRet bool, comment string) sink.FuncCtx {
	fc := &funcCtx{name: name, earlyRet: earlyRet, comment: comment, returnType: "*hwpgrt.Node", memoize: s.memoize()}

	if s.cfg != nil && s.cfg.ParserActions != nil {
		action, err := actions.Lookup(s.cfg.ParserActions, name)
		if err == nil {
			fc.useAction = true
			fc.actionSnippet = action.Snippet
			fc.returnType = action.ReturnType
		} else if !s.cfg.MakeParseTree && s.firstErr == nil {
			s.firstErr = err
		}
	}

	fc.cacheable = fc.memoize && !fc.useAction

	if s.startFuncName == "" {
		s.startFuncName = name
		s.startReturnType = fc.returnType
	}

	fc.body.WriteString("\tmark := ts.Mark()\n\t_ = mark\n\tvar children []*hwpgrt.Node\n\t_ = children\n")
	if fc.cacheable {
		fmt.Fprintf(&fc.body, "\tif cached, endPos, hit := memo.Lookup(%q, mark); hit {\n\t\tts.Reset(endPos)\n\t\treturn cached, nil\n\t}\n", fc.name)
	}
	return fc
}

func (s *Sink) EndFunction(ctx sink.FuncCtx) {
	fc := ctx.(*funcCtx)
	if fc.earlyRet {
		fc.emitFail(&fc.body)
	} else {
		fc.emitSuccess(&fc.body, "children")
	}

	var doc string
	if fc.comment != "" {
		doc = fmt.Sprintf("// %s is %s\n", fc.name, fc.comment)
	}
	params := "ts *hwpgrt.TokenStream"
	if fc.memoize {
		params += ", memo *hwpgrt.Memo"
	}
	sig := fmt.Sprintf("func %s(%s) (%s, error) {\n", fc.name, params, fc.returnType)
	s.funcs = append(s.funcs, doc+sig+fc.body.String()+"}\n")
}

func (s *Sink) EmitTokenOnce(ctx sink.FuncCtx, name, comment string) {
	fc := ctx.(*funcCtx)
	v := fc.freshVar("tok")
	if fc.earlyRet {
		fmt.Fprintf(&fc.body, "\tif %s, ok, err := hwpgrt.MatchTokenOrRollback(ts, %s); err != nil {\n\t\treturn nil, err\n\t} else if ok {\n", v, name)
		fc.emitSuccess(&fc.body, fmt.Sprintf("[]*hwpgrt.Node{{RuleName: %q, Lit: %s.Lit}}", name, v))
		fc.body.WriteString("\t}\n")
		return
	}
	fmt.Fprintf(&fc.body, "\t%s, ok, err := hwpgrt.MatchTokenOrRollback(ts, %s)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n\tif !ok {\n", v, name)
	fc.emitFail(&fc.body)
	fmt.Fprintf(&fc.body, "\t}\n\tchildren = append(children, &hwpgrt.Node{RuleName: %q, Lit: %s.Lit})\n", name, v)
}

func (s *Sink) EmitTokenZeroOrOnce(ctx sink.FuncCtx, name, comment string) {
	fc := ctx.(*funcCtx)
	v := fc.freshVar("tok")
	if fc.earlyRet {
		fmt.Fprintf(&fc.body, "\tif %s, ok := hwpgrt.TryMatchToken(ts, %s); ok {\n", v, name)
		fc.emitSuccess(&fc.body, fmt.Sprintf("[]*hwpgrt.Node{{RuleName: %q, Lit: %s.Lit}}", name, v))
		fc.body.WriteString("\t}\n")
		return
	}
	fmt.Fprintf(&fc.body, "\tif %s, ok := hwpgrt.TryMatchToken(ts, %s); ok {\n\t\tchildren = append(children, &hwpgrt.Node{RuleName: %q, Lit: %s.Lit})\n\t}\n",
		v, name, name, v)
}

func (s *Sink) EmitTokenZeroOrMore(ctx sink.FuncCtx, name, comment string) {
	s.emitTokenLoop(ctx, name, false)
}

func (s *Sink) EmitTokenOnceOrMore(ctx sink.FuncCtx, name, comment string) {
	s.emitTokenLoop(ctx, name, true)
}

func (s *Sink) emitTokenLoop(ctx sink.FuncCtx, name string, atLeastOne bool) {
	fc := ctx.(*funcCtx)
	v := fc.freshVar("tok")
	collected := fc.freshVar("toks")
	fmt.Fprintf(&fc.body, "\tvar %s []*hwpgrt.Node\n\tfor {\n\t\t%s, ok := hwpgrt.TryMatchToken(ts, %s)\n\t\tif !ok {\n\t\t\tbreak\n\t\t}\n\t\t%s = append(%s, &hwpgrt.Node{RuleName: %q, Lit: %s.Lit})\n\t}\n",
		collected, v, name, collected, collected, name, v)

	if atLeastOne {
		if fc.earlyRet {
			fmt.Fprintf(&fc.body, "\tif len(%s) > 0 {\n", collected)
			fc.emitSuccess(&fc.body, collected)
			fc.body.WriteString("\t}\n")
		} else {
			fmt.Fprintf(&fc.body, "\tif len(%s) == 0 {\n", collected)
			fc.emitFail(&fc.body)
			fmt.Fprintf(&fc.body, "\t}\n\tchildren = append(children, %s...)\n", collected)
		}
		return
	}

	if fc.earlyRet {
		fc.emitSuccess(&fc.body, collected)
	} else {
		fmt.Fprintf(&fc.body, "\tchildren = append(children, %s...)\n", collected)
	}
}

func (s *Sink) EmitRuleOnce(ctx sink.FuncCtx, name, comment string) {
	fc := ctx.(*funcCtx)
	v := fc.freshVar("n")
	if fc.earlyRet {
		fmt.Fprintf(&fc.body, "\tif %s, err := %s(%s); err != nil {\n\t\treturn nil, err\n\t} else if %s != nil {\n\t\treturn %s, nil\n\t}\n", v, name, fc.callArgs(), v, v)
		return
	}
	fmt.Fprintf(&fc.body, "\t%s, err := %s(%s)\n\tif err != nil {\n\t\treturn nil, err\n\t}\n\tif %s == nil {\n", v, name, fc.callArgs(), v)
	fc.emitFail(&fc.body)
	fmt.Fprintf(&fc.body, "\t}\n\tchildren = append(children, %s)\n", v)
}

func (s *Sink) EmitRuleZeroOrOnce(ctx sink.FuncCtx, name, comment string) {
	fc := ctx.(*funcCtx)
	v := fc.freshVar("n")
	if fc.earlyRet {
		fmt.Fprintf(&fc.body, "\tif %s, err := %s(%s); err != nil {\n\t\treturn nil, err\n\t} else if %s != nil {\n\t\treturn %s, nil\n\t}\n", v, name, fc.callArgs(), v, v)
		return
	}
	fmt.Fprintf(&fc.body, "\tif %s, err := %s(%s); err != nil {\n\t\treturn nil, err\n\t} else if %s != nil {\n\t\tchildren = append(children, %s)\n\t}\n", v, name, fc.callArgs(), v, v)
}

func (s *Sink) EmitRuleZeroOrMore(ctx sink.FuncCtx, name, comment string) {
	s.emitRuleLoop(ctx, name, false)
}

func (s *Sink) EmitRuleOnceOrMore(ctx sink.FuncCtx, name, comment string) {
	s.emitRuleLoop(ctx, name, true)
}

func (s *Sink) emitRuleLoop(ctx sink.FuncCtx, name string, atLeastOne bool) {
	fc := ctx.(*funcCtx)
	v := fc.freshVar("n")
	collected := fc.freshVar("ns")
	fmt.Fprintf(&fc.body, "\tvar %s []*hwpgrt.Node\n\tfor {\n\t\t%s, err := %s(%s)\n\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n\t\tif %s == nil {\n\t\t\tbreak\n\t\t}\n\t\t%s = append(%s, %s)\n\t}\n",
		collected, v, name, fc.callArgs(), v, collected, collected, v)

	if atLeastOne {
		if fc.earlyRet {
			fmt.Fprintf(&fc.body, "\tif len(%s) > 0 {\n", collected)
			fc.emitSuccess(&fc.body, collected)
			fc.body.WriteString("\t}\n")
		} else {
			fmt.Fprintf(&fc.body, "\tif len(%s) == 0 {\n", collected)
			fc.emitFail(&fc.body)
			fmt.Fprintf(&fc.body, "\t}\n\tchildren = append(children, %s...)\n", collected)
		}
		return
	}

	if fc.earlyRet {
		fc.emitSuccess(&fc.body, collected)
	} else {
		fmt.Fprintf(&fc.body, "\tchildren = append(children, %s...)\n", collected)
	}
}

func (s *Sink) MakeFunctionName(parts sink.NameParts) string {
	if parts.Binding != "" {
		return fmt.Sprintf("_parse_%s_%s", parts.Rule, parts.Binding)
	}
	if parts.InnerIndex > 0 {
		return fmt.Sprintf("_parse_%s_inner%d", parts.Rule, parts.InnerIndex)
	}
	return "parse_" + parts.Rule
}

const fileTmplSrc = `// Code generated by hwpg. DO NOT EDIT.

package {{.PackageName}}

import hwpgrt "github.com/nihei9/hwpg/runtime"

{{range .Funcs}}
{{.}}
{{end}}
{{if .StartFunc}}// Parse runs the grammar's start rule over ts.
func Parse(ts *hwpgrt.TokenStream) ({{.ReturnType}}, error) {
{{if .Memoize}}	memo := hwpgrt.NewMemo()
	return {{.StartFunc}}(ts, memo)
{{else}}	return {{.StartFunc}}(ts)
{{end}}}
{{end}}
`

var fileTmpl = template.Must(template.New("parser").Parse(fileTmplSrc))

// Render assembles every function emitted so far into one source file and
// normalizes it with go/parser + go/format, exactly the post-processing
// step the teacher runs over its embedded parser core.
func (s *Sink) Render() string {
	returnType := s.startReturnType
	if returnType == "" {
		returnType = "*hwpgrt.Node"
	}

	var raw bytes.Buffer
	err := fileTmpl.Execute(&raw, struct {
		PackageName string
		Funcs       []string
		StartFunc   string
		ReturnType  string
		Memoize     bool
	}{
		PackageName: s.packageName,
		Funcs:       s.funcs,
		StartFunc:   s.startFuncName,
		ReturnType:  returnType,
		Memoize:     s.memoize(),
	})
	if err != nil {
		return fmt.Sprintf("// gosink: template execution failed: %v\n", err)
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, s.Filename(), raw.Bytes(), parser.ParseComments)
	if err != nil {
		return raw.String()
	}

	var formatted bytes.Buffer
	if err := format.Node(&formatted, fset, f); err != nil {
		return raw.String()
	}
	return formatted.String()
}

// Filename names the file the rendered source should be written to.
func (s *Sink) Filename() string {
	return s.packageName + "_parser.go"
}
