// Package config provides rule-set management for the Freecell server.
//
// The config package handles:
//   - Loading rule-set variants from JSON and YAML files
//   - Rule-set validation
//   - Default rule-set selection
//   - Rule-set discovery and listing
//
// Configuration Format:
//
// Rule sets are stored in the configs directory as .json, .yaml or .yml
// files. Each file names the variant and sets the number of free cells and
// tableau columns:
//
//	name: two_cell
//	description: Hard Freecell with only two free cells
//	free_cells: 2
//	tableau_columns: 8
//
// Available Configurations:
//   - standard: four free cells, eight columns
//   - two_cell: two free cells, eight columns
//   - wide: four free cells, ten columns
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules, err := manager.LoadConfig("two_cell")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Falls back to engine.StandardRuleSet when no file is present
//	defaultRules := manager.GetDefault()
//
//	configs, err := manager.ListConfigs()
package config
