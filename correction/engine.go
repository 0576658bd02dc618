package correction

import (
	"github.com/rafactx/openapi-fixer-v2/document"
)

// Status classifies the outcome of applying one rule.
type Status string

const (
	// StatusApplied means the rule changed the document
	StatusApplied Status = "applied"
	// StatusSatisfied means the document already met the rule's condition
	StatusSatisfied Status = "satisfied"
	// StatusFailed means the rule could not be applied
	StatusFailed Status = "failed"
)

// Outcome is the per-rule result of an engine run.
type Outcome struct {
	// RuleID identifies the rule
	RuleID string
	// Status classifies what happened
	Status Status
	// Reason explains failed and satisfied outcomes
	Reason string
}

// Report contains the results of applying a rule list plus the semantic
// checks that ran afterwards.
type Report struct {
	// Outcomes holds one entry per rule, in rule order
	Outcomes []Outcome
	// AppliedCount is the number of rules that changed the document
	AppliedCount int
	// SatisfiedCount is the number of rules already satisfied
	SatisfiedCount int
	// FailedCount is the number of rules that could not apply
	FailedCount int
	// Findings holds the semantic check results
	Findings []Finding
}

// Success is true when every rule applied or was satisfied and the semantic
// checks found nothing.
func (r *Report) Success() bool {
	return r.FailedCount == 0 && len(r.Findings) == 0
}

// Engine applies correction rules to a document.
type Engine struct {
	// Logger receives step-by-step progress. Defaults to a no-op logger.
	Logger document.Logger
}

// New creates a new Engine with default settings.
func New() *Engine {
	return &Engine{Logger: document.NopLogger{}}
}

// Apply runs the rules against the document in order, then the semantic
// checks. The document tree is mutated in place. Failed rules and findings
// are recorded in the report, never returned as errors, so one broken rule
// does not abandon the corrections after it.
func (e *Engine) Apply(doc *document.Document, rules []Rule) *Report {
	report := &Report{}

	for _, rule := range rules {
		outcome := e.applyRule(doc.Data, rule)
		report.Outcomes = append(report.Outcomes, outcome)

		switch outcome.Status {
		case StatusApplied:
			report.AppliedCount++
			e.Logger.Info("rule applied", "rule", rule.ID, "action", string(rule.Action), "path", rule.Path)
		case StatusSatisfied:
			report.SatisfiedCount++
			e.Logger.Debug("rule already satisfied", "rule", rule.ID, "reason", outcome.Reason)
		case StatusFailed:
			report.FailedCount++
			e.Logger.Error("rule failed", "rule", rule.ID, "reason", outcome.Reason)
		}
	}

	report.Findings = e.runChecks(doc.Data)
	for _, f := range report.Findings {
		e.Logger.Error("semantic check finding", "check", string(f.Check), "location", f.Location, "detail", f.Detail)
	}

	return report
}
