package compliance

import (
	"log/slog"

	"github.com/anthon-rodrigues/docprocessor/internal/entity"
)

// Engine evaluates the registered rule table. Safe for unsynchronized
// concurrent use once constructed.
type Engine struct {
	rules []Rule
	log   *slog.Logger
}

func NewEngine(rules []Rule, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{rules: rules, log: log}
}

// Run evaluates every rule whose scope contains label against rec and
// returns the triggered findings in registration order.
//
// Evaluation is fail-open: a predicate that panics is treated as
// not-triggered, so one malformed rule cannot abort compliance checking
// for the whole document.
func (e *Engine) Run(rec *entity.StructuredRecord, label string) []entity.ComplianceFinding {
	findings := make([]entity.ComplianceFinding, 0, len(e.rules))
	for _, rule := range e.rules {
		if !rule.AppliesToLabel(label) {
			continue
		}
		if e.triggered(rule, rec) {
			findings = append(findings, rule.Finding())
		}
	}
	return findings
}

func (e *Engine) triggered(rule Rule, rec *entity.StructuredRecord) (result bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("compliance.rule.skipped", "rule_id", rule.ID, "panic", r)
			result = false
		}
	}()
	if rule.Predicate == nil {
		e.log.Warn("compliance.rule.skipped", "rule_id", rule.ID, "reason", "nil predicate")
		return false
	}
	return rule.Predicate.Evaluate(rec)
}
