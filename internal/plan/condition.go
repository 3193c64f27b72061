package plan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/expr-lang/expr"

	"scenario-planner/internal/fieldindex"
)

// conditionField matches response field references like $.status or
// $.job.status.
var conditionField = regexp.MustCompile(`\$\.([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)`)

// Condition is a while-loop condition translated for run time: response
// references ($.status) become variable references (status) that a
// condition extractor fills after every iteration.
type Condition struct {
	// Source is the authored condition.
	Source string
	// Expression is Source with response references replaced by variable
	// names, in expr syntax.
	Expression string
	// Fields are the referenced response fields as dotted paths, in order.
	Fields []string
}

// ParseCondition translates src and checks that it is a boolean
// expression. The returned Condition is usable even when err is set: its
// Fields still drive the condition extractors.
func ParseCondition(src string) (Condition, error) {
	cond := Condition{Source: strings.TrimSpace(src)}

	var fields []string
	for _, m := range conditionField.FindAllStringSubmatch(cond.Source, -1) {
		fields = append(fields, m[1])
	}

	if len(fields) > 0 {
		cond.Fields = slice.Unique(fields)
	}
	cond.Expression = conditionField.ReplaceAllStringFunc(cond.Source, func(ref string) string {
		return ConditionVariable(strings.TrimPrefix(ref, "$."))
	})

	if cond.Expression == "" {
		return cond, fmt.Errorf("empty loop condition")
	}

	if _, err := expr.Compile(cond.Expression, expr.AllowUndefinedVariables(), expr.AsBool()); err != nil {
		return cond, fmt.Errorf("invalid loop condition %q: %w", cond.Source, err)
	}

	return cond, nil
}

// ConditionVariable names the variable a condition extractor stores field
// in: "status" stays "status", "job.status" becomes "job_status".
func ConditionVariable(field string) string {
	return strings.ReplaceAll(field, ".", "_")
}

// ExtractorPath returns the JSONPath a condition extractor reads field from.
func ExtractorPath(field string) string {
	return fieldindex.FromDotted(field).JSONPath()
}
