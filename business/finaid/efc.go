package finaid

import "math"

type efcBracket struct {
	ceiling float64
	base    float64
	floor   float64
	rate    float64
}

// Progressive contribution brackets, ordered by ceiling.
var efcBrackets = []efcBracket{
	{ceiling: 30000, base: 0, floor: 0, rate: 0.05},
	{ceiling: 50000, base: 1500, floor: 30000, rate: 0.12},
	{ceiling: 75000, base: 3900, floor: 50000, rate: 0.22},
	{ceiling: 100000, base: 9400, floor: 75000, rate: 0.25},
	{ceiling: 150000, base: 15650, floor: 100000, rate: 0.30},
	{ceiling: math.Inf(1), base: 30650, floor: 150000, rate: 0.35},
}

// expectedFamilyContribution returns the rounded EFC, or 0 when income is unknown.
func expectedFamilyContribution(income *float64, dependents *int) float64 {
	if income == nil {
		return 0
	}

	x := moneyOr(income, 0)

	var efc float64
	for _, b := range efcBrackets {
		if x <= b.ceiling {
			efc = b.base + (x-b.floor)*b.rate
			break
		}
	}

	efc /= math.Max(1, float64(dependentsOr(dependents))*dependentWeight)

	return roundHalfUp(efc)
}
