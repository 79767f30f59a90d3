package insuredobject

import "github.com/marinehub/fleetdesk/modules/finance/domain/tariff"

// DecisionOverride carries the operator's premium and own-risk settings for
// a single approval, replacing the object's stored defaults.
type DecisionOverride struct {
	Premium tariff.Config
	OwnRisk tariff.Config
}
