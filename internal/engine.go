package internal

import (
	"fmt"

	"github.com/defogjs/defog/internal/fold"
	"github.com/defogjs/defog/internal/js/parser"
	"github.com/defogjs/defog/internal/js/printer"
	tt "github.com/defogjs/defog/internal/types"
)

// DefaultMaxPasses bounds the fixed-point loop. The cap is a safety
// bound against pathological rewrite interactions, not an error
// condition; hitting it yields a partially reduced result.
const DefaultMaxPasses = 100

// Engine drives rewrite passes over a tree until a pass performs zero
// replacements or the pass cap is reached. An instance must not be
// used from multiple goroutines at once: it owns the tree and the
// replacement counter for the duration of one Evaluate call.
type Engine struct {
	maxPasses    int
	ignoredRules map[string]bool
	rewriter     *fold.Rewriter
}

// NewEngine builds an engine from the per-rule configuration.
func NewEngine(rules map[string]tt.ConfigRule, maxPasses int) *Engine {
	e := &Engine{maxPasses: maxPasses}
	if e.maxPasses <= 0 {
		e.maxPasses = DefaultMaxPasses
	}
	for name, rule := range rules {
		if rule.Disabled {
			e.IgnoreRule(name)
		}
	}
	return e
}

// IgnoreRule switches off the named rewrite rule.
func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// Evaluate parses source, folds it to a fixed point, and returns the
// serialized result together with pass statistics. Parse errors are the
// only error path; an irreducible tree is not an error.
func (e *Engine) Evaluate(source string) (*tt.Report, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("error parsing source: %w", err)
	}

	e.rewriter = fold.NewRewriter(e.disabledRules())
	report := &tt.Report{}
	for report.Passes < e.maxPasses {
		replaced := e.rewriter.Pass(prog)
		report.Passes++
		report.Replacements += replaced
		if replaced == 0 {
			break
		}
	}

	report.Changes = e.rewriter.Changes()
	report.Output = printer.Print(prog)
	return report, nil
}

func (e *Engine) disabledRules() []string {
	if len(e.ignoredRules) == 0 {
		return nil
	}
	names := make([]string, 0, len(e.ignoredRules))
	for name := range e.ignoredRules {
		names = append(names, name)
	}
	return names
}
