// Package config is the layered configuration for one hwpg generate run:
// compiled-in defaults, overridden by an optional TOML file, overridden by
// command-line flags — the same precedence order the teacher's cobra/
// pflag-based commands apply, just with a TOML layer in between grounded
// on dekarrin-tunaq's use of github.com/BurntSushi/toml for its own tool
// configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nihei9/hwpg/actions"
)

// OutputType names the kind of output a run asks for. Only Validate reads
// it (OutputAction with MakeParseTree false and no ParserActions is
// rejected); code generation does not consult it, and a function with no
// matching action always returns a *hwpgrt.Node.
type OutputType string

const (
	OutputParseTree OutputType = "parse-tree"
	OutputAction    OutputType = "action"
)

// Config controls one generation run (spec.md §6).
type Config struct {
	TargetLanguage string             `toml:"target_language"`
	OutputType     OutputType         `toml:"output_type"`
	Memoize        bool               `toml:"memoize"`
	MakeParseTree  bool               `toml:"make_parse_tree"`
	PackageName    string             `toml:"package_name"`
	OutputDir      string             `toml:"output_dir"`
	ParserActions  actions.ParserActions `toml:"-"`
}

// Default returns the compiled-in defaults: Go output, a parse tree (no
// user actions required), memoization off.
func Default() *Config {
	return &Config{
		TargetLanguage: "go",
		OutputType:     OutputParseTree,
		Memoize:        false,
		MakeParseTree:  true,
		PackageName:    "parser",
		OutputDir:      ".",
	}
}

// Load starts from Default and overlays path, if it names a file that
// exists. A missing path is not an error: an optional config file is
// genuinely optional.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c, nil
	}

	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return c, nil
}

// Validate reports whether c describes a run hwpg can actually perform.
// TargetLanguage is checked here rather than at the cobra layer because
// config files can set it too (spec.md §6 lists it as a Config field, not
// just a flag).
func (c *Config) Validate() error {
	if c.TargetLanguage != "go" {
		return fmt.Errorf("config: unsupported target language %q (only \"go\" is implemented)", c.TargetLanguage)
	}
	if c.OutputType == OutputAction && !c.MakeParseTree && c.ParserActions == nil {
		return fmt.Errorf("config: output_type %q with make_parse_tree=false requires parser actions", OutputAction)
	}
	if c.PackageName == "" {
		return fmt.Errorf("config: package_name must not be empty")
	}
	return nil
}
