package finaid

import (
	"errors"
	"fmt"
	"math"

	"uniFinder/domain"
)

var ErrInvalidInput = errors.New("invalid input")

type residency int

const (
	residencyOutOfState residency = iota
	residencyInState
	residencyInternational
)

func residencyOf(p *domain.StudentProfile) residency {
	switch {
	case isTrue(p.InternationalStudent):
		return residencyInternational
	case isTrue(p.InState):
		return residencyInState
	default:
		return residencyOutOfState
	}
}

func grossTuition(u *domain.University, r residency) float64 {
	switch r {
	case residencyInternational:
		if isSet(u.TuitionInternational) {
			return moneyOr(u.TuitionInternational, defaultInternationalTuition)
		}
		return moneyOr(u.TuitionOutOfState, defaultInternationalTuition)
	case residencyInState:
		return moneyOr(u.TuitionInState, defaultInStateTuition)
	default:
		return moneyOr(u.TuitionOutOfState, defaultOutOfStateTuition)
	}
}

// needBasedAid returns the aid awarded against demonstrated need.
func needBasedAid(u *domain.University, p *domain.StudentProfile, need float64) float64 {
	var aid float64
	if isTrue(u.NeedBlindAdmission) {
		aid = need * needBlindCoverage
	} else {
		pct := moneyOr(u.PercentageReceivingAid, defaultPercentReceivingAid)
		aid = need * (needBaseCoverage + needCoveragePerAidShare*pct/100)
	}

	if isTrue(p.FirstGeneration) {
		aid += need * firstGenNeedBonus
	}

	return aid
}

func meritBasedAid(u *domain.University, p *domain.StudentProfile, r residency, tuition float64, score int) float64 {
	if score <= 0 {
		return 0
	}

	aid := moneyOr(u.AvgFinancialAidPackage, tuition*meritBaseShareOfTuition) * meritAidFactor(score)

	if r == residencyInternational && !isTrue(u.ScholarshipsInternational) {
		aid *= noIntlScholarshipMeritFactor
	}
	if r == residencyInState && u.Type != nil && *u.Type == publicUniversityType {
		aid *= inStatePublicMeritBoost
	}

	return aid
}

func scholarships(u *domain.University, p *domain.StudentProfile, r residency, score int) float64 {
	weight := float64(score) / 100

	if r == residencyInternational {
		if !isTrue(u.ScholarshipsInternational) {
			return 0
		}
		base := defaultInternationalSchBase
		if isSet(u.AvgFinancialAidPackage) {
			base = moneyOr(u.AvgFinancialAidPackage, 0) * internationalSchShareOfAid
		}
		return math.Min(internationalScholarshipCap, base) * weight
	}

	amount := moneyOr(u.AvgFinancialAidPackage, defaultDomesticScholarship) * domesticScholarshipShare * weight
	if isTrue(p.FirstGeneration) {
		amount *= firstGenScholarshipBoost
	}
	return amount
}

func confidenceScore(u *domain.University, p *domain.StudentProfile) int {
	score := 50
	if u.AvgFinancialAidPackage != nil {
		score += 10
	}
	if u.PercentageReceivingAid != nil {
		score += 10
	}
	if u.NeedBlindAdmission != nil {
		score += 5
	}
	if u.ScholarshipsInternational != nil {
		score += 5
	}
	if p.GPA != nil {
		score += 4
	}
	if p.SATScore != nil || p.ACTScore != nil {
		score += 4
	}
	if p.FamilyIncome != nil {
		score += 8
	}
	if p.InternationalStudent != nil {
		score += 2
	}
	if p.InState != nil {
		score += 2
	}
	return min(score, 95)
}

// Predict estimates tuition, aid and net cost of one university for one
// student. It is pure and safe for concurrent use.
func Predict(u *domain.University, p *domain.StudentProfile) (*domain.Prediction, error) {
	if u == nil {
		return nil, fmt.Errorf("%w: university is required", ErrInvalidInput)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: student profile is required", ErrInvalidInput)
	}

	r := residencyOf(p)
	tuition := grossTuition(u, r)
	living := moneyOr(u.CostOfLivingEst, defaultCostOfLiving)

	efc := expectedFamilyContribution(p.FamilyIncome, p.Dependents)

	var need, needAid float64
	if p.FamilyIncome != nil {
		need = math.Max(0, tuition-efc)
		needAid = needBasedAid(u, p, need)
	}

	merit := meritScore(p)
	meritAid := meritBasedAid(u, p, r, tuition, merit)
	schAid := scholarships(u, p, r, merit)

	// Overlapping awards never cover more than the aid cap of tuition.
	totalAid := needAid + meritAid + schAid
	if aidCap := tuition * aidCapShareOfTuition; totalAid > aidCap {
		scale := aidCap / totalAid
		needAid *= scale
		meritAid *= scale
		schAid *= scale
		totalAid = aidCap
	}

	netCost := math.Max(0, tuition-totalAid)

	return &domain.Prediction{
		GrossTuition: int(roundHalfUp(tuition)),
		EstimatedAid: int(roundHalfUp(totalAid)),
		AidBreakdown: domain.AidBreakdown{
			MeritBased:   int(roundHalfUp(meritAid)),
			NeedBased:    int(roundHalfUp(needAid)),
			Scholarships: int(roundHalfUp(schAid)),
		},
		NetCost:          int(roundHalfUp(netCost)),
		CostOfLiving:     int(roundHalfUp(living)),
		TotalOutOfPocket: int(roundHalfUp(netCost + living)),
		Scenarios: domain.CostScenarios{
			Optimistic:   int(roundHalfUp(math.Max(0, tuition-totalAid*optimisticAidMultiplier))),
			Realistic:    int(roundHalfUp(netCost)),
			Conservative: int(roundHalfUp(math.Max(0, tuition-totalAid*conservativeAidMultiplier))),
		},
		ConfidenceScore: confidenceScore(u, p),
		Methodology: domain.PredictionMethodology{
			MeritScore:       merit,
			DemonstratedNeed: int(roundHalfUp(need)),
			EFC:              int(efc),
		},
	}, nil
}

// PredictBatch runs Predict over every university in input order. The batch
// is all-or-nothing: the first failing element aborts it.
func PredictBatch(universities []*domain.University, p *domain.StudentProfile) ([]domain.BatchPrediction, error) {
	if universities == nil {
		return nil, fmt.Errorf("%w: universities must be a list", ErrInvalidInput)
	}

	out := make([]domain.BatchPrediction, 0, len(universities))
	for i, u := range universities {
		prediction, err := Predict(u, p)
		if err != nil {
			return nil, fmt.Errorf("universities[%d]: %w", i, err)
		}
		out = append(out, domain.BatchPrediction{
			UniversityID:   u.ID,
			UniversityName: u.Name,
			Prediction:     prediction,
		})
	}

	return out, nil
}
