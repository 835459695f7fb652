package engine

import (
	"errors"
	"strings"
	"testing"
)

func createValidRuleSet() *RuleSet {
	return &RuleSet{
		Name:           "test",
		Description:    "A valid test rule set",
		FreeCells:      3,
		TableauColumns: 9,
	}
}

func TestStandardRuleSet(t *testing.T) {
	rules := StandardRuleSet()

	if rules.Name != "standard" {
		t.Errorf("Expected name standard, got %s", rules.Name)
	}
	if rules.FreeCells != DefaultFreeCells || rules.TableauColumns != DefaultTableauColumns {
		t.Errorf("Expected %d cells and %d columns, got %d and %d",
			DefaultFreeCells, DefaultTableauColumns, rules.FreeCells, rules.TableauColumns)
	}
	if err := ValidateRuleSet(&rules); err != nil {
		t.Errorf("Standard rule set should be valid: %v", err)
	}
}

func TestValidateRuleSet(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*RuleSet)
		wantErr string
	}{
		{name: "valid", modify: func(r *RuleSet) {}},
		{name: "no free cells", modify: func(r *RuleSet) { r.FreeCells = MinFreeCells }},
		{name: "most free cells", modify: func(r *RuleSet) { r.FreeCells = MaxFreeCells }},
		{name: "fewest columns", modify: func(r *RuleSet) { r.TableauColumns = MinTableauColumns }},
		{name: "most columns", modify: func(r *RuleSet) { r.TableauColumns = MaxTableauColumns }},
		{name: "missing name", modify: func(r *RuleSet) { r.Name = "" }, wantErr: "name is required"},
		{name: "missing description", modify: func(r *RuleSet) { r.Description = "" }, wantErr: "description is required"},
		{name: "negative free cells", modify: func(r *RuleSet) { r.FreeCells = -1 }, wantErr: "free_cells must be between"},
		{name: "too many free cells", modify: func(r *RuleSet) { r.FreeCells = MaxFreeCells + 1 }, wantErr: "free_cells must be between"},
		{name: "too few columns", modify: func(r *RuleSet) { r.TableauColumns = MinTableauColumns - 1 }, wantErr: "tableau_columns must be between"},
		{name: "too many columns", modify: func(r *RuleSet) { r.TableauColumns = MaxTableauColumns + 1 }, wantErr: "tableau_columns must be between"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := createValidRuleSet()
			tt.modify(rules)

			err := ValidateRuleSet(rules)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected valid rule set, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRuleSet) {
				t.Errorf("Expected ErrInvalidRuleSet, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateRuleSet_Nil(t *testing.T) {
	if err := ValidateRuleSet(nil); !errors.Is(err, ErrInvalidRuleSet) {
		t.Errorf("Expected ErrInvalidRuleSet for nil rule set, got %v", err)
	}
}
