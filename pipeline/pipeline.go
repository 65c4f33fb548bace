// Package pipeline runs one grammar through the whole generator end to
// end: rawtree.Grammar -> irbuilder -> process -> codegen -> gosink, plus the
// token-alphabet and runtime files a generated parser needs alongside its
// parser functions. Grounded on the teacher's two-stage CLI (cmd/vartan's
// compile.go feeding cmd/vartan-go's generate.go) fused into the single
// step this generator's simpler IR allows.
package pipeline

import (
	"embed"
	"fmt"
	"path"

	"github.com/nihei9/hwpg/codegen"
	"github.com/nihei9/hwpg/config"
	"github.com/nihei9/hwpg/gosink"
	"github.com/nihei9/hwpg/irbuilder"
	"github.com/nihei9/hwpg/process"
	"github.com/nihei9/hwpg/rawtree"
	"github.com/nihei9/hwpg/tokenalphabet"
)

//go:embed runtime_src/*.go
var runtimeSrc embed.FS

// Result is every file one generation run produces, keyed by the relative
// path it should be written to under Config.OutputDir.
type Result struct {
	Files map[string][]byte
}

// Run builds cfg.PackageName's parser from raw. It returns the semantic
// errors from the process stage verbatim (wrapped, never discarded) if
// any were found — in that case no code was generated and Result is nil,
// matching spec.md §7's "no partial emission" rule.
func Run(raw *rawtree.Grammar, cfg *config.Config) (*Result, []error) {
	if err := cfg.Validate(); err != nil {
		return nil, []error{err}
	}

	built := irbuilder.Build(raw)
	processed, tokenNames, errs := process.Process(built)
	if len(errs) > 0 {
		return nil, errs
	}

	s := gosink.New(cfg.PackageName, cfg)
	if err := codegen.New(s).Generate(processed); err != nil {
		return nil, []error{err}
	}
	if err := s.Err(); err != nil {
		return nil, []error{err}
	}

	tokensSrc, err := tokenalphabet.Generate(cfg.PackageName, tokenNames)
	if err != nil {
		return nil, []error{err}
	}

	files := map[string][]byte{
		fmt.Sprintf("%s_parser.go", cfg.PackageName): []byte(s.Render()),
		fmt.Sprintf("%s_tokens.go", cfg.PackageName):  tokensSrc,
		"doc.go": []byte(docFileSrc(cfg.PackageName)),
	}

	runtimeFiles, err := copyRuntimeSources()
	if err != nil {
		return nil, []error{err}
	}
	for name, src := range runtimeFiles {
		files[name] = src
	}

	return &Result{Files: files}, nil
}

func docFileSrc(pkgName string) string {
	return fmt.Sprintf("// Package %s was generated by hwpg. DO NOT EDIT.\npackage %s\n", pkgName, pkgName)
}

// copyRuntimeSources returns the hwpgrt runtime package's source, embedded
// at build time, to be copied alongside the generated parser — the same
// "embed the driver verbatim" strategy the teacher uses for its own
// parser core (driver/template.go's //go:embed parser.go).
func copyRuntimeSources() (map[string][]byte, error) {
	entries, err := runtimeSrc.ReadDir("runtime_src")
	if err != nil {
		return nil, fmt.Errorf("pipeline: read embedded runtime sources: %w", err)
	}
	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		b, err := runtimeSrc.ReadFile(path.Join("runtime_src", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("pipeline: read %s: %w", e.Name(), err)
		}
		out[path.Join("hwpgrt", e.Name())] = b
	}
	return out, nil
}
