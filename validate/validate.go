// Command validate checks the rule-set files in a configs directory
// (default ./configs). For each .json, .yaml or .yml file it checks:
//   - the file parses and passes engine rule-set validation
//   - the rule set deals a consistent 52-card layout
//   - the name matches the file name, since sessions refer to configs by file name
//   - no two files declare the same rule-set name
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/freecell/game/config"
	"github.com/wricardo/freecell/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Name   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single rule-set file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	rules, err := config.Parse(data, filepath.Ext(filePath))
	if err != nil {
		result.fail("%v", err)
		return result
	}
	result.Name = rules.Name

	base := strings.TrimSuffix(result.File, filepath.Ext(result.File))
	if rules.Name != base {
		result.fail("name %q does not match file name %q", rules.Name, base)
	}

	// Deal a game to confirm the layout holds together
	deck, err := engine.Deal(*rules, 1)
	if err != nil {
		result.fail("Failed to deal: %v", err)
		return result
	}
	if err := deck.Validate(); err != nil {
		result.fail("Dealt layout is inconsistent: %v", err)
		return result
	}

	if result.Valid {
		shortest, longest := columnHeights(deck)
		result.info("Name: %s", rules.Name)
		result.info("Free cells: %d", rules.FreeCells)
		result.info("Tableau columns: %d (%d-%d cards each)", rules.TableauColumns, shortest, longest)
		result.info("Opening run capacity: %d", engine.MaxMovable(deck, ""))
		if rules.FreeCells == 0 {
			result.info("No free cells: only single cards and column-to-column runs")
		}
	}

	return result
}

func columnHeights(deck *engine.Deck) (shortest, longest int) {
	shortest = engine.NumCards
	for _, id := range deck.TableauIDs() {
		n := len(deck.CardsInPile(id))
		if n < shortest {
			shortest = n
		}
		if n > longest {
			longest = n
		}
	}
	return shortest, longest
}

// configFiles lists the rule-set files in dir, sorted by name
func configFiles(dir string) ([]string, error) {
	var files []string
	for _, ext := range config.Extensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// validateDir validates every rule-set file in dir and flags duplicate names
func validateDir(dir string) ([]ValidationResult, error) {
	files, err := configFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("error finding config files: %w", err)
	}

	results := make([]ValidationResult, 0, len(files))
	seen := make(map[string]string)
	for _, file := range files {
		result := validateConfig(file)
		if result.Name != "" {
			if first, dup := seen[result.Name]; dup {
				result.fail("name %q already declared by %s", result.Name, first)
			} else {
				seen[result.Name] = result.File
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// main validates each rule-set file, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	configDir := "configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	results, err := validateDir(configDir)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Printf("No rule-set files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, result := range results {
		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
