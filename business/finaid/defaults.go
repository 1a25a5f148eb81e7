package finaid

import (
	"fmt"
	"math"

	"uniFinder/domain"
)

// Fallbacks used when a university or profile attribute is unknown.
const (
	defaultInternationalTuition  = 50000.0
	defaultInStateTuition        = 25000.0
	defaultOutOfStateTuition     = 40000.0
	defaultCostOfLiving          = 15000.0
	defaultPercentReceivingAid   = 50.0
	defaultDependents            = 1
	defaultDomesticScholarship   = 15000.0
	defaultInternationalSchBase  = 10000.0
	meritBaseShareOfTuition      = 0.3
	internationalSchShareOfAid   = 0.3
	internationalScholarshipCap  = 20000.0
	domesticScholarshipShare     = 0.2
	firstGenScholarshipBoost     = 1.3
	firstGenNeedBonus            = 0.08
	needBlindCoverage            = 0.95
	needBaseCoverage             = 0.6
	needCoveragePerAidShare      = 0.2
	noIntlScholarshipMeritFactor = 0.4
	inStatePublicMeritBoost      = 1.15
	aidCapShareOfTuition         = 0.95
	dependentWeight              = 0.75
	optimisticAidMultiplier      = 1.25
	conservativeAidMultiplier    = 0.75
	publicUniversityType         = "public"

	// MaxMoneyAmount bounds every monetary input so derived figures fit in
	// an int.
	MaxMoneyAmount = 1e9
)

// moneyOr resolves an optional amount. Negative and non-finite values are
// treated as unknown so every derived figure stays non-negative, and
// amounts above MaxMoneyAmount are clamped to it.
func moneyOr(v *float64, fallback float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return fallback
	}
	return math.Min(*v, MaxMoneyAmount)
}

// ValidateAmounts rejects monetary fields of u that are negative, non-finite
// or above MaxMoneyAmount.
func ValidateAmounts(u *domain.University) error {
	amounts := []struct {
		field string
		value *float64
	}{
		{"tuition_international", u.TuitionInternational},
		{"tuition_out_of_state", u.TuitionOutOfState},
		{"tuition_in_state", u.TuitionInState},
		{"avg_tuition_per_year", u.AvgTuitionPerYear},
		{"cost_of_living_est", u.CostOfLivingEst},
		{"avg_financial_aid_package", u.AvgFinancialAidPackage},
	}
	for _, a := range amounts {
		v := a.value
		if v == nil {
			continue
		}
		if *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) || *v > MaxMoneyAmount {
			return fmt.Errorf("%w: %s must be between 0 and %.0f", ErrInvalidInput, a.field, MaxMoneyAmount)
		}
	}
	return nil
}

func isSet(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v >= 0
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

func dependentsOr(v *int) int {
	if v == nil {
		return defaultDependents
	}
	return *v
}

// roundHalfUp rounds to the nearest whole unit, halves towards +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
