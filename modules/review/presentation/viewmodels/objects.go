package viewmodels

type InsuredObject struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	ObjectType         string          `json:"objectType"`
	ObjectTypeLabel    string          `json:"objectTypeLabel"`
	Status             string          `json:"status"`
	Value              float64         `json:"value"`
	Organization       string          `json:"organization"`
	InsuranceStartDate string          `json:"insuranceStartDate"`
	PremiumMethod      string          `json:"premiumMethod"`
	PremiumPercentage  float64         `json:"premiumPercentage"`
	PremiumFixedAmount float64         `json:"premiumFixedAmount"`
	OwnRiskAmount      float64         `json:"ownRiskAmount"`
	PremiumPreview     float64         `json:"premiumPreview"`
	OwnRiskPreview     float64         `json:"ownRiskPreview"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          string          `json:"createdAt"`
	UpdatedAt          string          `json:"updatedAt"`
	Selected           bool            `json:"selected"`
	RejectionAudit     *RejectionAudit `json:"rejectionAudit,omitempty"`
}

type RejectionAudit struct {
	Reason            string       `json:"reason,omitempty"`
	StartDateOverride bool         `json:"startDateOverride,omitempty"`
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

type ObjectList struct {
	Objects []*InsuredObject `json:"objects"`
	Total   int              `json:"total"`
}

type BulkReport struct {
	Approved []string      `json:"approved"`
	Failed   []BulkFailure `json:"failed"`
}

type BulkFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}
