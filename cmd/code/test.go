package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"code/interpreter-go/pkg/driver"
)

var testCmd = &cobra.Command{
	Use:   "test [suite.yml ...]",
	Short: "Run suite files of programs with expected output",
	Long: `Run one or more suite files. Each suite is a YAML file listing programs
together with the output or error each is expected to produce. With no
arguments, every .yml file under the current directory's fixtures/ is run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			matches, err := filepath.Glob(filepath.Join("fixtures", "*.yml"))
			if err != nil || len(matches) == 0 {
				return fmt.Errorf("%s: no suite files given and none found under fixtures/", appName)
			}
			sort.Strings(matches)
			paths = matches
		}

		passed, failed := 0, 0
		for _, path := range paths {
			suite, err := driver.LoadSuite(path)
			if err != nil {
				fmt.Fprintln(os.Stderr, red(err.Error()))
				failed++
				continue
			}
			fmt.Printf("%s (%s)\n", suite.Name, path)
			for _, result := range driver.RunSuite(suite) {
				if result.Passed {
					passed++
					fmt.Printf("  %s %s\n", green("ok"), result.Case.Name)
				} else {
					failed++
					fmt.Printf("  %s %s: %s\n", red("FAIL"), result.Case.Name, result.Reason)
				}
			}
		}

		fmt.Printf("\n%d passed, %d failed\n", passed, failed)
		if failed > 0 {
			return fmt.Errorf("%d case(s) failed", failed)
		}
		return nil
	},
}
