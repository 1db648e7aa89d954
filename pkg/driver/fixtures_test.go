package driver

import (
	"path/filepath"
	"testing"
)

// TestFixtureSuites runs the shipped corpus end to end.
func TestFixtureSuites(t *testing.T) {
	root := filepath.Join("..", "..", "fixtures")
	paths, err := filepath.Glob(filepath.Join(root, "*.yml"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no suite files under %s", root)
	}

	for _, path := range paths {
		suite, err := LoadSuite(path)
		if err != nil {
			t.Fatalf("load %s: %v", path, err)
		}
		for _, result := range RunSuite(suite) {
			result := result
			t.Run(suite.Name+"/"+result.Case.Name, func(t *testing.T) {
				if !result.Passed {
					t.Fatal(result.Reason)
				}
			})
		}
	}
}
