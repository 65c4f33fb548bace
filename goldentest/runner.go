package goldentest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hwpgrt "github.com/nihei9/hwpg/runtime"
)

// ParseFunc is a generated rule function's signature — normally
// parse_<start-rule> from a generated parser package.
type ParseFunc func(ts *hwpgrt.TokenStream) (*hwpgrt.Node, error)

// NewTokenizer builds the Tokenizer a fixture's Source should be read
// through. Supplied by the caller since tokenization is outside this
// generator's scope (spec.md §1).
type NewTokenizer func(src []byte) hwpgrt.Tokenizer

// Result is the outcome of running one fixture.
type Result struct {
	FixturePath string
	Err         error
	Diffs       []*Diff
}

func (r *Result) Passed() bool { return r.Err == nil }

func (r *Result) String() string {
	if r.Err == nil {
		return fmt.Sprintf("PASS %s", r.FixturePath)
	}
	const indent = "    "
	lines := []string{fmt.Sprintf("FAIL %s: %v", r.FixturePath, r.Err)}
	for _, d := range r.Diffs {
		lines = append(lines, indent+d.Message)
		lines = append(lines, indent+"expected path: "+d.ExpectedPath)
		lines = append(lines, indent+"actual path:   "+d.ActualPath)
	}
	return strings.Join(lines, "\n")
}

// ListFixtures recursively collects every file under path (or path
// itself, if it names a file), matching the teacher's tester.
// ListTestCases directory-walk behavior.
func ListFixtures(path string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		sub, err := ListFixtures(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// RunFixture parses one fixture file's Source with parse and diffs the
// result against its Expected tree.
func RunFixture(fixturePath string, parse ParseFunc, newTok NewTokenizer) *Result {
	f, err := os.Open(fixturePath)
	if err != nil {
		return &Result{FixturePath: fixturePath, Err: err}
	}
	defer f.Close()

	tc, err := ParseTestCase(f)
	if err != nil {
		return &Result{FixturePath: fixturePath, Err: err}
	}

	ts := hwpgrt.NewTokenStream(newTok(tc.Source))
	node, err := parse(ts)
	if err != nil {
		return &Result{FixturePath: fixturePath, Err: err}
	}
	if node == nil {
		return &Result{FixturePath: fixturePath, Err: fmt.Errorf("no match: the parser did not accept the fixture's source")}
	}

	diffs := DiffTree(tc.Expected, node)
	if len(diffs) > 0 {
		return &Result{FixturePath: fixturePath, Err: fmt.Errorf("output mismatch"), Diffs: diffs}
	}
	return &Result{FixturePath: fixturePath}
}

// RunAll runs every fixture under path.
func RunAll(path string, parse ParseFunc, newTok NewTokenizer) ([]*Result, error) {
	fixtures, err := ListFixtures(path)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, len(fixtures))
	for i, fx := range fixtures {
		results[i] = RunFixture(fx, parse, newTok)
	}
	return results, nil
}
