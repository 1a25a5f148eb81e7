package finaid

import (
	"math"

	"uniFinder/domain"
)

type threshold struct {
	min    float64
	points float64
}

var (
	gpaPoints = []threshold{
		{4.0, 40}, {3.8, 36}, {3.5, 30}, {3.0, 22}, {2.5, 12},
	}
	satPoints = []threshold{
		{1500, 35}, {1400, 30}, {1300, 24}, {1200, 18}, {1100, 12},
	}
	actPoints = []threshold{
		{33, 35}, {30, 30}, {27, 24}, {24, 18}, {21, 12},
	}
	meritAidFactors = []threshold{
		{90, 0.7}, {75, 0.5}, {60, 0.35}, {45, 0.2},
	}
)

const (
	gpaFloorPoints    = 5
	testFloorPoints   = 6
	meritFloorFactor  = 0.12
	pointsPerTalent   = 8
	maxTalentPoints   = 25
	maxMeritScore     = 100
	singleFactorBoost = 2.5
	twoFactorBoost    = 1.5
	multiFactorBoost  = 1.25
)

func bucket(v float64, table []threshold, floor float64) float64 {
	for _, t := range table {
		if v >= t.min {
			return t.points
		}
	}
	return floor
}

// meritScore blends GPA, SAT, ACT and talents into 0..100. SAT and ACT
// together count as a single factor.
func meritScore(p *domain.StudentProfile) int {
	var (
		sum     float64
		factors int
	)

	if p.GPA != nil {
		sum += bucket(*p.GPA, gpaPoints, gpaFloorPoints)
		factors++
	}
	if p.SATScore != nil {
		sum += bucket(float64(*p.SATScore), satPoints, testFloorPoints)
		factors++
	}
	if p.ACTScore != nil {
		sum += bucket(float64(*p.ACTScore), actPoints, testFloorPoints)
		factors++
	}
	if p.SATScore != nil && p.ACTScore != nil {
		factors--
	}
	if n := len(p.SpecialTalents); n > 0 {
		sum += math.Min(maxTalentPoints, float64(n*pointsPerTalent))
		factors++
	}

	if factors == 0 {
		return 0
	}

	multiplier := multiFactorBoost
	switch factors {
	case 1:
		multiplier = singleFactorBoost
	case 2:
		multiplier = twoFactorBoost
	}

	return int(math.Min(maxMeritScore, roundHalfUp(sum/float64(factors)*multiplier)))
}

func meritAidFactor(score int) float64 {
	return bucket(float64(score), meritAidFactors, meritFloorFactor)
}
