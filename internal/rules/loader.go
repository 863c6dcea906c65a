package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/taxlever/taxlever/internal/domain"
)

// RuleTable is the on-disk shape of the versioned rule table.
type RuleTable struct {
	Version string           `json:"version"`
	Rules   []domain.RuleRow `json:"rules"`
}

// RowIssue is one validation problem found in a rule table row.
type RowIssue struct {
	Index      int
	StrategyID domain.StrategyID
	Message    string
}

func (i RowIssue) String() string {
	return fmt.Sprintf("row %d (strategy %q): %s", i.Index, i.StrategyID, i.Message)
}

// RuleTableError aggregates every row-level validation failure so an
// operator can fix a whole rule file in one pass instead of replaying
// fail-fast errors.
type RuleTableError struct {
	Path   string
	Issues []RowIssue
}

func (e *RuleTableError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, "  "+issue.String())
	}
	return fmt.Sprintf("rule table %s has %d invalid row(s):\n%s", e.Path, len(e.Issues), strings.Join(lines, "\n"))
}

// LoadRules reads and validates a JSON rule table. Validation is fail
// closed: any invalid row rejects the whole table, and all offending rows
// are reported together.
func LoadRules(path string, catalog domain.Catalog) ([]domain.RuleRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule table %s: %w", path, err)
	}
	var table RuleTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse rule table %s: %w", path, err)
	}
	rows, issues := normalizeRows(table.Rules, catalog)
	if len(issues) > 0 {
		return nil, &RuleTableError{Path: path, Issues: issues}
	}
	return rows, nil
}

// ValidateTable checks a parsed rule table without touching the
// filesystem; the CLI's lint mode uses it directly.
func ValidateTable(table RuleTable, catalog domain.Catalog) []RowIssue {
	_, issues := normalizeRows(table.Rules, catalog)
	return issues
}

// normalizeRows validates every row against the catalog and operator set
// and applies defaults: required defaults to true, and an exists row with
// no value defaults to true.
func normalizeRows(rows []domain.RuleRow, catalog domain.Catalog) ([]domain.RuleRow, []RowIssue) {
	var issues []RowIssue
	out := make([]domain.RuleRow, 0, len(rows))
	for i, row := range rows {
		if !catalog.Known(row.StrategyID) {
			issues = append(issues, RowIssue{Index: i, StrategyID: row.StrategyID, Message: "unknown strategy id"})
		}
		if !domain.ValidOperator(row.Operator) {
			issues = append(issues, RowIssue{Index: i, StrategyID: row.StrategyID,
				Message: fmt.Sprintf("invalid operator %q", row.Operator)})
		}
		if row.RuleGroup == "" {
			issues = append(issues, RowIssue{Index: i, StrategyID: row.StrategyID, Message: "rule_group is required"})
		}
		if row.FieldPath == "" {
			issues = append(issues, RowIssue{Index: i, StrategyID: row.StrategyID, Message: "field is required"})
		}
		if row.Value == nil && row.Operator != domain.OpExists {
			issues = append(issues, RowIssue{Index: i, StrategyID: row.StrategyID,
				Message: fmt.Sprintf("value is required for operator %q", row.Operator)})
		}
		if row.Operator == domain.OpExists && row.Value == nil {
			row.Value = true
		}
		out = append(out, row)
	}
	return out, issues
}
