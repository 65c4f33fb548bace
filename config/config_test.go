package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.PackageName != Default().PackageName {
		t.Fatalf("c = %+v, want defaults", c)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *c != *Default() {
		t.Fatalf("c = %+v, want defaults", c)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hwpg.toml")
	const content = `
package_name = "jsongram"
output_dir = "./out"
memoize = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.PackageName != "jsongram" || c.OutputDir != "./out" || !c.Memoize {
		t.Fatalf("c = %+v, unexpected", c)
	}
	// fields the file didn't set keep their compiled-in default.
	if c.TargetLanguage != "go" {
		t.Fatalf("c.TargetLanguage = %q, want default", c.TargetLanguage)
	}
}

func TestValidateRejectsUnsupportedTargetLanguage(t *testing.T) {
	c := Default()
	c.TargetLanguage = "rust"
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for an unsupported target language")
	}
}

func TestValidateRejectsMissingActionsWhenParseTreeDisabled(t *testing.T) {
	c := Default()
	c.MakeParseTree = false
	c.OutputType = OutputAction
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error when actions are required but absent")
	}
}
