package mappers

import (
	"time"

	"github.com/marinehub/fleetdesk/modules/review/domain/insuredobject"
	"github.com/marinehub/fleetdesk/modules/review/presentation/viewmodels"
	"github.com/marinehub/fleetdesk/modules/review/services"
)

func ObjectToViewModel(obj *insuredobject.PendingObject, selected bool) *viewmodels.InsuredObject {
	return &viewmodels.InsuredObject{
		ID:                 obj.ID,
		Name:               obj.Name,
		ObjectType:         string(obj.ObjectType),
		ObjectTypeLabel:    obj.ObjectType.Label(),
		Status:             string(obj.Status),
		Value:              obj.Value,
		Organization:       obj.Organization,
		InsuranceStartDate: obj.InsuranceStartDate.Format(time.RFC3339),
		PremiumMethod:      string(obj.PremiumMethod),
		PremiumPercentage:  obj.PremiumPercentage,
		PremiumFixedAmount: obj.PremiumFixedAmount,
		OwnRiskAmount:      obj.OwnRiskAmount,
		PremiumPreview:     obj.PremiumPreview(),
		OwnRiskPreview:     obj.OwnRiskPreview(),
		Notes:              obj.Notes,
		CreatedAt:          obj.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          obj.UpdatedAt.Format(time.RFC3339),
		Selected:           selected,
		RejectionAudit:     auditToViewModel(obj.RejectionAudit),
	}
}

func auditToViewModel(audit *insuredobject.RejectionAudit) *viewmodels.RejectionAudit {
	if audit == nil {
		return nil
	}
	rules := make([]viewmodels.RuleResult, 0, len(audit.RulesEvaluated))
	for _, rule := range audit.RulesEvaluated {
		failed := make([]viewmodels.ConditionResult, 0, len(rule.FailedConditions))
		for _, cond := range rule.FailedConditions {
			failed = append(failed, viewmodels.ConditionResult{
				Field:    cond.Field,
				Operator: cond.Operator,
				Expected: cond.Expected,
				Actual:   cond.Actual,
			})
		}
		rules = append(rules, viewmodels.RuleResult{
			RuleName:         rule.RuleName,
			Logic:            rule.Logic,
			PassedConditions: rule.PassedConditions,
			TotalConditions:  rule.TotalConditions,
			FailedConditions: failed,
		})
	}
	return &viewmodels.RejectionAudit{
		Reason:            audit.Reason,
		StartDateOverride: audit.StartDateOverride,
		RulesEvaluated:    rules,
	}
}

func BulkReportToViewModel(report *services.BulkReport) *viewmodels.BulkReport {
	vm := &viewmodels.BulkReport{
		Approved: report.Approved,
		Failed:   make([]viewmodels.BulkFailure, 0, len(report.Failed)),
	}
	for _, f := range report.Failed {
		vm.Failed = append(vm.Failed, viewmodels.BulkFailure{ID: f.ID, Error: f.Error})
	}
	return vm
}
