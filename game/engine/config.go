package engine

import "fmt"

// RuleSet describes a Freecell variant. Foundations are fixed at one per suit.
type RuleSet struct {
	Name           string `json:"name" yaml:"name"`
	Description    string `json:"description" yaml:"description"`
	FreeCells      int    `json:"free_cells" yaml:"free_cells"`
	TableauColumns int    `json:"tableau_columns" yaml:"tableau_columns"`
}

// StandardRuleSet returns classic Freecell: four free cells and eight columns
func StandardRuleSet() RuleSet {
	return RuleSet{
		Name:           "standard",
		Description:    "Classic Freecell with four free cells and eight tableau columns",
		FreeCells:      DefaultFreeCells,
		TableauColumns: DefaultTableauColumns,
	}
}

// ValidateRuleSet checks a rule set for playability
func ValidateRuleSet(rules *RuleSet) error {
	if rules == nil {
		return fmt.Errorf("%w: rule set is nil", ErrInvalidRuleSet)
	}
	if rules.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRuleSet)
	}
	if rules.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidRuleSet)
	}
	if rules.FreeCells < MinFreeCells || rules.FreeCells > MaxFreeCells {
		return fmt.Errorf("%w: free_cells must be between %d and %d, got %d",
			ErrInvalidRuleSet, MinFreeCells, MaxFreeCells, rules.FreeCells)
	}
	if rules.TableauColumns < MinTableauColumns || rules.TableauColumns > MaxTableauColumns {
		return fmt.Errorf("%w: tableau_columns must be between %d and %d, got %d",
			ErrInvalidRuleSet, MinTableauColumns, MaxTableauColumns, rules.TableauColumns)
	}
	return nil
}
