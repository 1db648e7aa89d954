package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const passingSuite = `name: smoke
cases:
  - name: hello
    source: |
      BEGIN CODE
      DISPLAY: "hi"
      END CODE
    output: "hi"
`

func TestReadSuite(t *testing.T) {
	suite, err := ReadSuite(strings.NewReader(passingSuite))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if suite.Name != "smoke" || len(suite.Cases) != 1 {
		t.Fatalf("suite: got %+v", suite)
	}
	if suite.Cases[0].WantOutput != "hi" {
		t.Fatalf("expected output: got %q", suite.Cases[0].WantOutput)
	}
}

func TestReadSuiteRejectsUnknownFields(t *testing.T) {
	_, err := ReadSuite(strings.NewReader("name: x\ncases:\n  - name: y\n    source: z\n    bogus: 1\n"))
	if err == nil {
		t.Fatal("expected unknown-field error")
	}
}

func TestSuiteValidation(t *testing.T) {
	cases := []struct {
		yaml     string
		fragment string
	}{
		{"cases:\n  - name: a\n    source: x\n", "name must be provided"},
		{"name: s\n", "at least one case"},
		{"name: s\ncases:\n  - source: x\n", "name must be provided"},
		{"name: s\ncases:\n  - name: a\n", "either source or file"},
		{"name: s\ncases:\n  - name: a\n    source: x\n    file: y\n", "mutually exclusive"},
		{"name: s\ncases:\n  - name: a\n    source: x\n  - name: a\n    source: x\n", "more than once"},
		{"name: s\ncases:\n  - name: a\n    source: x\n    output: 1\n    error: 2\n", "mutually exclusive"},
	}
	for _, tc := range cases {
		_, err := ReadSuite(strings.NewReader(tc.yaml))
		if err == nil {
			t.Fatalf("expected validation error for %q", tc.yaml)
		}
		verr, ok := err.(*ValidationError)
		if !ok {
			t.Fatalf("expected ValidationError for %q, got %T: %v", tc.yaml, err, err)
		}
		if !strings.Contains(verr.Error(), tc.fragment) {
			t.Fatalf("error %q does not mention %q", verr.Error(), tc.fragment)
		}
	}
}

func TestLoadSuiteResolvesSourceFiles(t *testing.T) {
	dir := t.TempDir()
	program := "BEGIN CODE\nDISPLAY: \"from file\"\nEND CODE\n"
	if err := os.WriteFile(filepath.Join(dir, "prog.code"), []byte(program), 0o644); err != nil {
		t.Fatalf("write program: %v", err)
	}
	suiteYAML := "name: files\ncases:\n  - name: external\n    file: prog.code\n    output: \"from file\"\n"
	suitePath := filepath.Join(dir, "suite.yml")
	if err := os.WriteFile(suitePath, []byte(suiteYAML), 0o644); err != nil {
		t.Fatalf("write suite: %v", err)
	}

	suite, err := LoadSuite(suitePath)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	results := RunSuite(suite)
	if len(results) != 1 || !results[0].Passed {
		t.Fatalf("results: %+v", results)
	}
}

func TestRunSuiteReportsMismatch(t *testing.T) {
	suite, err := ReadSuite(strings.NewReader(`name: mismatch
cases:
  - name: wrong output
    source: |
      BEGIN CODE
      DISPLAY: "actual"
      END CODE
    output: "expected"
  - name: wrong error
    source: |
      BEGIN CODE
      DISPLAY: "fine"
      END CODE
    error: "division by zero"
`))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	results := RunSuite(suite)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Passed {
			t.Fatalf("case %q should have failed", r.Case.Name)
		}
		if r.Reason == "" {
			t.Fatalf("case %q has no failure reason", r.Case.Name)
		}
	}
}

func TestRunSuiteMatchesErrorSubstring(t *testing.T) {
	suite, err := ReadSuite(strings.NewReader(`name: errors
cases:
  - name: divide by zero
    source: |
      BEGIN CODE
      INT a = 1, b = 0
      DISPLAY: a / b
      END CODE
    error: "division by zero"
`))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	results := RunSuite(suite)
	if !results[0].Passed {
		t.Fatalf("expected pass, got %+v", results[0])
	}
}

func TestExecutePipesStdin(t *testing.T) {
	out, err := Execute("BEGIN CODE\nINT x\nSCAN: x\nDISPLAY: x\nEND CODE\n", "9\n")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if out != "9" {
		t.Fatalf("output: got %q", out)
	}
}
