package insuredobject

import (
	"time"

	"github.com/google/uuid"

	"github.com/marinehub/fleetdesk/modules/finance/domain/tariff"
)

// RawRecord is an insured object exactly as the backend returns it. Every
// field may be absent; the backend predates several of them.
type RawRecord struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	ObjectType         string          `json:"objectType"`
	Status             string          `json:"status"`
	Value              *float64        `json:"value"`
	Organization       string          `json:"organization"`
	InsuranceStartDate *time.Time      `json:"insuranceStartDate"`
	PremiumMethod      string          `json:"premiumMethod"`
	PremiumPercentage  *float64        `json:"premiumPercentage"`
	PremiumFixedAmount *float64        `json:"premiumFixedAmount"`
	OwnRisk            *float64        `json:"ownRisk"`
	Notes              string          `json:"notes"`
	CreatedAt          *time.Time      `json:"createdAt"`
	UpdatedAt          *time.Time      `json:"updatedAt"`
	RejectionAudit     *RejectionAudit `json:"rejectionAudit"`
}

// Normalize is the single boundary between partial upstream data and the
// rest of the system. Missing fields are backfilled instead of rejecting the
// record:
//
//	id                 → random uuid
//	organization       → "Unknown"
//	objectType         → boat
//	status             → Pending
//	value, percentages → 0
//	createdAt          → now (updatedAt follows createdAt)
//	insuranceStartDate → createdAt
func Normalize(raw RawRecord, now time.Time) *PendingObject {
	obj := &PendingObject{
		ID:           raw.ID,
		Name:         raw.Name,
		Organization: raw.Organization,
		Notes:        raw.Notes,
	}
	if obj.ID == "" {
		obj.ID = uuid.New().String()
	}
	if obj.Organization == "" {
		obj.Organization = "Unknown"
	}

	objectType, err := NewObjectType(raw.ObjectType)
	if err != nil {
		objectType = ObjectTypeBoat
	}
	obj.ObjectType = objectType

	switch Status(raw.Status) {
	case StatusRejected:
		obj.Status = StatusRejected
	default:
		obj.Status = StatusPending
	}

	if raw.Value != nil {
		obj.Value = *raw.Value
	}
	if raw.PremiumPercentage != nil {
		obj.PremiumPercentage = *raw.PremiumPercentage
	}
	if raw.PremiumFixedAmount != nil {
		obj.PremiumFixedAmount = *raw.PremiumFixedAmount
	}
	if raw.OwnRisk != nil {
		obj.OwnRiskAmount = *raw.OwnRisk
	}
	if method, err := tariff.NewMethod(raw.PremiumMethod); err == nil {
		obj.PremiumMethod = method
	}

	if raw.CreatedAt != nil {
		obj.CreatedAt = *raw.CreatedAt
	} else {
		obj.CreatedAt = now
	}
	if raw.UpdatedAt != nil {
		obj.UpdatedAt = *raw.UpdatedAt
	} else {
		obj.UpdatedAt = obj.CreatedAt
	}
	if raw.InsuranceStartDate != nil {
		obj.InsuranceStartDate = *raw.InsuranceStartDate
	} else {
		obj.InsuranceStartDate = obj.CreatedAt
	}

	obj.RejectionAudit = raw.RejectionAudit
	return obj
}
