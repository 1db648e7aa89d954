package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Suite represents a parsed test suite file: a named collection of programs
// with the output or error each one is expected to produce.
type Suite struct {
	Path  string
	Name  string
	Cases []*Case
}

// Case is a single program under test. Source holds inline program text;
// SourceFile points at a program on disk relative to the suite file. Exactly
// one of the two is set.
type Case struct {
	Name       string
	Source     string
	SourceFile string
	Stdin      string
	WantOutput string
	WantError  string
}

// ValidationError aggregates suite validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "suite: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("suite validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadSuite parses a suite file from disk, returning a validated suite.
func LoadSuite(path string) (*Suite, error) {
	if path == "" {
		return nil, fmt.Errorf("suite: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("suite: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("suite: open %s: %w", absPath, err)
	}
	defer file.Close()

	suite, err := ReadSuite(file)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("suite: %s is empty", absPath)
		}
		return nil, err
	}
	suite.Path = absPath
	return suite, nil
}

// ReadSuite parses and validates a suite from a reader.
func ReadSuite(r io.Reader) (*Suite, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw suiteFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, fmt.Errorf("suite: parse: %w", err)
	}

	suite := raw.toSuite()
	if err := suite.validate(); err != nil {
		return nil, err
	}
	return suite, nil
}

func (s *Suite) validate() error {
	var errs ValidationError
	if s.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if len(s.Cases) == 0 {
		errs.Issues = append(errs.Issues, "at least one case must be provided")
	}
	seen := make(map[string]struct{}, len(s.Cases))
	for i, c := range s.Cases {
		label := c.Name
		if label == "" {
			label = fmt.Sprintf("cases[%d]", i)
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: name must be provided", label))
		}
		if _, dup := seen[c.Name]; dup && c.Name != "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("case %q is defined more than once", c.Name))
		}
		seen[c.Name] = struct{}{}
		if c.Source == "" && c.SourceFile == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: either source or file must be provided", label))
		}
		if c.Source != "" && c.SourceFile != "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: source and file are mutually exclusive", label))
		}
		if c.WantOutput != "" && c.WantError != "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: output and error expectations are mutually exclusive", label))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ResolveSource returns the case's program text, reading SourceFile relative
// to the suite file when the source is not inline.
func (s *Suite) ResolveSource(c *Case) (string, error) {
	if c.Source != "" {
		return c.Source, nil
	}
	path := c.SourceFile
	if !filepath.IsAbs(path) && s.Path != "" {
		path = filepath.Join(filepath.Dir(s.Path), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("suite: case %q: %w", c.Name, err)
	}
	return string(data), nil
}

type suiteFile struct {
	Name  string     `yaml:"name"`
	Cases []caseYAML `yaml:"cases"`
}

type caseYAML struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	File   string `yaml:"file"`
	Stdin  string `yaml:"stdin"`
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
}

func (sf suiteFile) toSuite() *Suite {
	suite := &Suite{
		Name:  strings.TrimSpace(sf.Name),
		Cases: make([]*Case, 0, len(sf.Cases)),
	}
	for _, c := range sf.Cases {
		suite.Cases = append(suite.Cases, &Case{
			Name:       strings.TrimSpace(c.Name),
			Source:     c.Source,
			SourceFile: strings.TrimSpace(c.File),
			Stdin:      c.Stdin,
			WantOutput: c.Output,
			WantError:  c.Error,
		})
	}
	return suite
}
