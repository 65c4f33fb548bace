// Package tokenalphabet renders the token-type enumeration every generated
// parser needs: a dense, zero-free set of Go int constants, one per token
// name the processor resolved (process.Process's second return value),
// always including EOF and ILLEGAL. Values start at 1, not 0, so the zero
// value of TokenType never aliases a real token (the original source's
// TokenType(IntEnum) uses auto(), which starts at 1 for the same reason).
// Grounded on the teacher's lexer-kind enumeration (spec/lexer.go's
// KindID sequencing) but simplified to a flat token list, since lexer
// generation itself is out of scope.
package tokenalphabet

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"
)

const tmplSrc = `// Code generated by hwpg. DO NOT EDIT.

package {{.PackageName}}

import hwpgrt "github.com/nihei9/hwpg/runtime"

type TokenType = hwpgrt.TokenType

type Token = hwpgrt.Token

type Tokenizer = hwpgrt.Tokenizer

const (
{{- range $i, $name := .TokenNames}}
	{{$name}} TokenType = {{add $i 1}}
{{- end}}
)

var tokenNames = map[TokenType]string{
{{- range $i, $name := .TokenNames}}
	{{add $i 1}}: "{{$name}}",
{{- end}}
}

func (t TokenType) String() string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	return "UNKNOWN"
}
`

var tmpl = template.Must(template.New("tokenalphabet").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
}).Parse(tmplSrc))

// Generate renders the token-type source file for packageName given
// tokenNames in the order they must be assigned (process.Process always
// places EOF and ILLEGAL last, so they get the two highest values).
func Generate(packageName string, tokenNames []string) ([]byte, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		PackageName string
		TokenNames  []string
	}{PackageName: packageName, TokenNames: tokenNames})
	if err != nil {
		return nil, fmt.Errorf("tokenalphabet: render template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("tokenalphabet: format generated source: %w", err)
	}
	return formatted, nil
}
