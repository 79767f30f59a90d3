package insuredobject

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/marinehub/fleetdesk/modules/finance/domain/tariff"
)

func TestNormalize_BackfillsEverything(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	obj := Normalize(RawRecord{}, now)

	_, err := uuid.Parse(obj.ID)
	require.NoError(t, err, "missing id gets a generated uuid")
	require.Equal(t, "Unknown", obj.Organization)
	require.Equal(t, ObjectTypeBoat, obj.ObjectType)
	require.Equal(t, StatusPending, obj.Status)
	require.Zero(t, obj.Value)
	require.Zero(t, obj.PremiumPercentage)
	require.Zero(t, obj.OwnRiskAmount)
	require.Equal(t, now, obj.CreatedAt)
	require.Equal(t, now, obj.UpdatedAt)
	require.Equal(t, now, obj.InsuranceStartDate)
}

func TestNormalize_KeepsPresentFields(t *testing.T) {
	created := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	value := 20000.0
	pct := 2.5
	ownRisk := 250.0

	obj := Normalize(RawRecord{
		ID:                 "obj-1",
		Name:               "De Zeemeeuw",
		ObjectType:         "trailer",
		Status:             "Rejected",
		Value:              &value,
		Organization:       "Alpha",
		InsuranceStartDate: &start,
		PremiumMethod:      "percentage",
		PremiumPercentage:  &pct,
		OwnRisk:            &ownRisk,
		CreatedAt:          &created,
	}, time.Now())

	require.Equal(t, "obj-1", obj.ID)
	require.Equal(t, ObjectTypeTrailer, obj.ObjectType)
	require.Equal(t, StatusRejected, obj.Status)
	require.Equal(t, tariff.MethodPercentage, obj.PremiumMethod)
	require.Equal(t, 2.5, obj.PremiumPercentage)
	require.Equal(t, 250.0, obj.OwnRiskAmount)
	require.Equal(t, start, obj.InsuranceStartDate)
	require.Equal(t, created, obj.CreatedAt)
	require.Equal(t, created, obj.UpdatedAt, "updatedAt follows createdAt when absent")
}

func TestNormalize_UnknownEnumValuesFallBack(t *testing.T) {
	obj := Normalize(RawRecord{ObjectType: "submarine", Status: "Approved", PremiumMethod: "weekly"}, time.Now())
	require.Equal(t, ObjectTypeBoat, obj.ObjectType)
	// An already-approved object cannot re-enter the working set; unknown
	// statuses collapse to Pending.
	require.Equal(t, StatusPending, obj.Status)
	require.Empty(t, obj.PremiumMethod)
}

func TestPremiumPreview_PercentageObject(t *testing.T) {
	obj := &PendingObject{
		Value:             20000,
		PremiumMethod:     tariff.MethodPercentage,
		PremiumPercentage: 2.5,
	}
	require.InDelta(t, 50.0, obj.PremiumPreview(), 1e-9)
}

func TestOwnRiskPreview_SnapsStoredAmount(t *testing.T) {
	obj := &PendingObject{OwnRiskAmount: 137}
	require.InDelta(t, 150.0, obj.OwnRiskPreview(), 1e-9)
}

func TestStatusDecidable(t *testing.T) {
	require.True(t, StatusPending.Decidable())
	require.True(t, StatusRejected.Decidable())
	require.False(t, StatusApproved.Decidable())
}
