package tariff

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/marinehub/fleetdesk/pkg/serrors"
)

// Method selects how an amount is derived: a fixed euro amount or a
// per-mille rate over the insured value.
type Method string

const (
	MethodFixed      Method = "fixed"
	MethodPercentage Method = "percentage"
)

func NewMethod(m string) (Method, error) {
	method := Method(m)
	if !method.IsValid() {
		return "", errors.New("invalid tariff method")
	}
	return method, nil
}

func (m Method) IsValid() bool {
	switch m {
	case MethodFixed, MethodPercentage:
		return true
	}
	return false
}

// Config holds both the fixed amount and the per-mille rate; the inactive
// field keeps its value across method switches so operator input is never
// lost on a toggle.
type Config struct {
	Method      Method
	FixedAmount float64
	Percentage  float64
}

func Fixed(amount float64) Config {
	return Config{Method: MethodFixed, FixedAmount: amount}
}

func Percentage(perMille float64) Config {
	return Config{Method: MethodPercentage, Percentage: perMille}
}

var ownRiskStep = decimal.NewFromInt(50)

// Premium computes the yearly premium in euros, rounded to whole cents.
// Percentage rates are per-mille of the insured value, not percent.
func (c Config) Premium(baseValue float64) float64 {
	switch c.Method {
	case MethodFixed:
		return decimal.NewFromFloat(c.FixedAmount).Round(2).InexactFloat64()
	case MethodPercentage:
		return perMille(baseValue, c.Percentage).Round(2).InexactFloat64()
	}
	return 0
}

// OwnRisk computes the deductible. The fixed path snaps to the nearest
// multiple of 50; the percentage path rounds to whole euros without
// snapping. The asymmetry mirrors longstanding production behavior and is
// kept on purpose.
func (c Config) OwnRisk(baseValue float64) float64 {
	switch c.Method {
	case MethodFixed:
		steps := decimal.NewFromFloat(c.FixedAmount).Div(ownRiskStep).Round(0)
		return steps.Mul(ownRiskStep).InexactFloat64()
	case MethodPercentage:
		return perMille(baseValue, c.Percentage).Round(0).InexactFloat64()
	}
	return 0
}

// Validate reports whether the active method has a usable rate or amount.
func (c Config) Validate() error {
	switch c.Method {
	case MethodFixed:
		if c.FixedAmount <= 0 {
			return serrors.Validation("fixed amount must be greater than zero")
		}
	case MethodPercentage:
		if c.Percentage <= 0 {
			return serrors.Validation("percentage must be greater than zero")
		}
	default:
		return serrors.Validation("unknown tariff method '%s'", c.Method)
	}
	return nil
}

func perMille(baseValue, rate float64) decimal.Decimal {
	return decimal.NewFromFloat(baseValue).
		Mul(decimal.NewFromFloat(rate)).
		Div(decimal.NewFromInt(1000))
}
