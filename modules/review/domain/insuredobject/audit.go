package insuredobject

// RejectionAudit is the append-only trail the external auto-approval rule
// engine leaves behind when it declines an object. It is rendered read-only;
// nothing in this subsystem mutates it.
type RejectionAudit struct {
	Reason            string       `json:"reason,omitempty"`
	StartDateOverride bool         `json:"ingangsdatumOverride,omitempty"`
	RulesEvaluated    []RuleResult `json:"rulesEvaluated,omitempty"`
}

type RuleResult struct {
	RuleName         string            `json:"ruleName"`
	Logic            string            `json:"logic"`
	PassedConditions int               `json:"passedConditions"`
	TotalConditions  int               `json:"totalConditions"`
	FailedConditions []ConditionResult `json:"failedConditions,omitempty"`
}

type ConditionResult struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}
