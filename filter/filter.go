// Package filter provides client-side filtering of listed documents using
// expr expressions, for narrowing results beyond what the server's query
// parameters support.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/kjess/corpora/corpora"
)

// Filter is a compiled document filter expression.
type Filter struct {
	program    *vm.Program
	expression string
}

// Compile compiles a filter expression. Expressions see the document as
// "Document" plus a set of helper functions, e.g.:
//
//	Document.Title contains "report" and daysSince(Document.CreatedAt) < 30
//	hasMetadata("source") and metadata("source") == "wiki"
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(buildEnv(corpora.Document{})),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{
		program:    program,
		expression: expression,
	}, nil
}

// Matches evaluates the filter against a document.
func (f *Filter) Matches(doc corpora.Document) (bool, error) {
	result, err := expr.Run(f.program, buildEnv(doc))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression must evaluate to a boolean, got %T", result)
	}
	return matched, nil
}

// Expression returns the original expression text.
func (f *Filter) Expression() string {
	return f.expression
}

// buildEnv creates the evaluation environment for a document.
func buildEnv(doc corpora.Document) map[string]any {
	return map[string]any{
		"Document": doc,

		// Metadata helpers
		"hasMetadata": func(key string) bool {
			_, ok := doc.Metadata[key]
			return ok
		},
		"metadata": func(key string) any {
			return doc.Metadata[key]
		},

		// Status helpers
		"ingested": func() bool {
			return strings.EqualFold(doc.IngestionStatus, "success")
		},

		// Date helpers
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"now": time.Now,

		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
