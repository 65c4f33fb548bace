package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nihei9/hwpg/config"
	verr "github.com/nihei9/hwpg/error"
	"github.com/nihei9/hwpg/pipeline"
	"github.com/nihei9/hwpg/rawtree"
)

var generateFlags = struct {
	config      *string
	outDir      *string
	packageName *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate a parser from a grammar's raw tree",
		Example: `  hwpg generate grammar.json -o ./parser -p jsongram`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runGenerate,
	}
	generateFlags.config = cmd.Flags().StringP("config", "c", "", "path to a hwpg.toml config file")
	generateFlags.outDir = cmd.Flags().StringP("output", "o", "", "output directory (default the config's output_dir, or \".\")")
	generateFlags.packageName = cmd.Flags().StringP("package", "p", "", "generated package name (overrides config)")
	rootCmd.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	cfg, err := config.Load(*generateFlags.config)
	if err != nil {
		return err
	}
	if *generateFlags.outDir != "" {
		cfg.OutputDir = *generateFlags.outDir
	}
	if *generateFlags.packageName != "" {
		cfg.PackageName = *generateFlags.packageName
	}

	raw, err := readRawGrammar(grmPath)
	if err != nil {
		return err
	}

	result, errs := pipeline.Run(raw, cfg)
	if len(errs) > 0 {
		sourceName := grmPath
		if sourceName == "" {
			sourceName = "stdin"
		}
		specErrs := verr.FromErrors(errs, sourceName)
		fmt.Fprintln(os.Stderr, specErrs.Error())
		return fmt.Errorf("hwpg: %d error(s), no output written", len(specErrs))
	}

	if err := writeResult(cfg.OutputDir, result); err != nil {
		return err
	}
	return nil
}

// readRawGrammar reads a rawtree.Grammar from path, or from stdin (spooled
// to a collision-proof scratch file first, mirroring the teacher's
// os.MkdirTemp-based stdin handling in cmd/vartan/compile.go, but naming
// the directory with a uuid instead of a template pattern) when path is
// empty.
func readRawGrammar(path string) (*rawtree.Grammar, error) {
	if path == "" {
		tmpDir, err := os.MkdirTemp("", "hwpg-"+uuid.NewString())
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(tmpDir)

		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}

		path = filepath.Join(tmpDir, "stdin.json")
		if err := os.WriteFile(path, src, 0o600); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hwpg: cannot open grammar file %s: %w", path, err)
	}
	defer f.Close()

	var g rawtree.Grammar
	if err := json.NewDecoder(f).Decode(&g); err != nil {
		return nil, fmt.Errorf("hwpg: cannot parse grammar JSON: %w", err)
	}
	return &g, nil
}

func writeResult(outDir string, result *pipeline.Result) error {
	for name, src := range result.Files {
		fullPath := filepath.Join(outDir, name)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, src, 0o644); err != nil {
			return fmt.Errorf("hwpg: cannot write %s: %w", fullPath, err)
		}
	}
	return nil
}
