package insuredobject

import (
	"errors"
	"time"

	"github.com/marinehub/fleetdesk/modules/finance/domain/tariff"
)

type ObjectType string

const (
	ObjectTypeBoat    ObjectType = "boat"
	ObjectTypeTrailer ObjectType = "trailer"
	ObjectTypeMotor   ObjectType = "motor"
)

func NewObjectType(t string) (ObjectType, error) {
	objectType := ObjectType(t)
	if !objectType.IsValid() {
		return "", errors.New("invalid object type")
	}
	return objectType, nil
}

func (t ObjectType) IsValid() bool {
	switch t {
	case ObjectTypeBoat, ObjectTypeTrailer, ObjectTypeMotor:
		return true
	}
	return false
}

// Label is the display name the presentation layer searches and sorts on.
func (t ObjectType) Label() string {
	switch t {
	case ObjectTypeBoat:
		return "Boat"
	case ObjectTypeTrailer:
		return "Trailer"
	case ObjectTypeMotor:
		return "Motor"
	}
	return string(t)
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusRejected Status = "Rejected"
	// StatusApproved is terminal: an approved object leaves the working set
	// permanently and is never listed here again.
	StatusApproved Status = "Approved"
)

// Decidable reports whether an approve or decline may still be issued.
// Rejected is deliberately not terminal: a rejected object stays visible for
// reconsideration.
func (s Status) Decidable() bool {
	return s == StatusPending || s == StatusRejected
}

// PendingObject is the working copy of a backend-owned insured object while
// it awaits an approval decision.
type PendingObject struct {
	ID                 string
	Name               string
	ObjectType         ObjectType
	Status             Status
	Value              float64
	Organization       string
	InsuranceStartDate time.Time
	PremiumMethod      tariff.Method
	PremiumPercentage  float64
	PremiumFixedAmount float64
	OwnRiskAmount      float64
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	RejectionAudit     *RejectionAudit
}

// StoredPremiumConfig reinterprets the object's stored premium fields as a
// tariff config; it is the approval default when the operator supplies no
// override. An object without a stored method falls back to the fixed
// amount.
func (o *PendingObject) StoredPremiumConfig() tariff.Config {
	switch o.PremiumMethod {
	case tariff.MethodPercentage:
		return tariff.Config{
			Method:      tariff.MethodPercentage,
			FixedAmount: o.PremiumFixedAmount,
			Percentage:  o.PremiumPercentage,
		}
	default:
		return tariff.Config{
			Method:      tariff.MethodFixed,
			FixedAmount: o.PremiumFixedAmount,
			Percentage:  o.PremiumPercentage,
		}
	}
}

// StoredOwnRiskConfig reinterprets the stored own-risk amount as a
// fixed-method config.
func (o *PendingObject) StoredOwnRiskConfig() tariff.Config {
	return tariff.Fixed(o.OwnRiskAmount)
}

// PremiumPreview is the amount shown next to the object in the review list.
func (o *PendingObject) PremiumPreview() float64 {
	return o.StoredPremiumConfig().Premium(o.Value)
}

// OwnRiskPreview mirrors PremiumPreview for the deductible.
func (o *PendingObject) OwnRiskPreview() float64 {
	return o.StoredOwnRiskConfig().OwnRisk(o.Value)
}
