package matching

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"uniFinder/domain"
)

const (
	startingScore = 100
	minimumScore  = 1

	penaltyMinGPA     = 20
	penaltyTestPolicy = 10
	penaltyBudget     = 30
	penaltyCountry    = 15
	penaltyVisa       = 20

	policyNoTest       = "no-test"
	policyRequiresTest = "requires-test"
)

// Score rates one university against the criteria on a 0..100 scale.
// Every module appends at least one explanation, academics up to two.
func Score(u *domain.University, c domain.MatchCriteria) domain.ScoreResult {
	if u == nil {
		u = &domain.University{}
	}

	score := startingScore
	explanations := make([]string, 0, 5)

	score -= scoreAcademics(u, c, &explanations)
	score -= scoreFinancials(u, c, &explanations)
	score -= scoreLifestyle(u, c, &explanations)
	score -= scoreFuture(u, c, &explanations)

	return domain.ScoreResult{
		Score:        max(0, min(startingScore, score)),
		Explanations: explanations,
	}
}

func scoreAcademics(u *domain.University, c domain.MatchCriteria, out *[]string) int {
	f, ok := c.ActiveAcademics()
	if !ok {
		*out = append(*out, "Academics: not considered")
		return 0
	}

	penalty := 0
	if want, ok := f.MinGPA.Get(); ok && u.MinGPA != nil && *u.MinGPA < want {
		penalty += penaltyMinGPA
		*out = append(*out, fmt.Sprintf("Academics: minimum GPA %.2f is below your %.2f threshold (-%d)", *u.MinGPA, want, penaltyMinGPA))
	}

	if policy, ok := f.TestPolicy.Get(); ok && policy != "" && testPolicyMismatch(policy, u.RequiredTests) {
		penalty += penaltyTestPolicy
		*out = append(*out, fmt.Sprintf("Academics: test policy %q not satisfied (-%d)", policy, penaltyTestPolicy))
	}

	if penalty == 0 {
		*out = append(*out, "Academics: requirements fit")
	}
	return penalty
}

func testPolicyMismatch(policy string, required []string) bool {
	tests := make([]string, 0, len(required))
	for _, t := range required {
		tests = append(tests, strings.ToLower(t))
	}

	switch p := strings.ToLower(policy); p {
	case policyNoTest:
		return len(tests) > 0
	case policyRequiresTest:
		return len(tests) == 0
	default:
		return !slices.Contains(tests, p)
	}
}

func scoreFinancials(u *domain.University, c domain.MatchCriteria, out *[]string) int {
	f, ok := c.ActiveFinancials()
	if !ok {
		*out = append(*out, "Financials: not considered")
		return 0
	}

	if budget, ok := f.MaxBudget.Get(); ok && u.AvgTuitionPerYear != nil && *u.AvgTuitionPerYear > budget {
		*out = append(*out, fmt.Sprintf("Financials: tuition %.0f exceeds budget %.0f (-%d)", *u.AvgTuitionPerYear, budget, penaltyBudget))
		return penaltyBudget
	}

	*out = append(*out, "Financials: within budget")
	return 0
}

func scoreLifestyle(u *domain.University, c domain.MatchCriteria, out *[]string) int {
	f, ok := c.ActiveLifestyle()
	if !ok {
		*out = append(*out, "Lifestyle: not considered")
		return 0
	}

	countries, ok := f.Countries.Get()
	if ok && len(countries) > 0 && u.Country != nil {
		matched := slices.ContainsFunc(countries, func(want string) bool {
			return strings.EqualFold(want, *u.Country)
		})
		if !matched {
			*out = append(*out, fmt.Sprintf("Lifestyle: %s is not a preferred country (-%d)", *u.Country, penaltyCountry))
			return penaltyCountry
		}
	}

	*out = append(*out, "Lifestyle: location fits")
	return 0
}

func scoreFuture(u *domain.University, c domain.MatchCriteria, out *[]string) int {
	f, ok := c.ActiveFuture()
	if !ok {
		*out = append(*out, "Future: not considered")
		return 0
	}

	months := u.VisaMonths()
	if want, ok := f.MinVisaMonths.Get(); ok && months != nil && *months < want {
		*out = append(*out, fmt.Sprintf("Future: post-study visa %.0f months is below your %.0f minimum (-%d)", *months, want, penaltyVisa))
		return penaltyVisa
	}

	*out = append(*out, "Future: post-study outlook fits")
	return 0
}

func tuitionSortKey(u *domain.University) float64 {
	if u.AvgTuitionPerYear == nil || math.IsNaN(*u.AvgTuitionPerYear) {
		return math.Inf(1)
	}
	return *u.AvgTuitionPerYear
}

// Rank scores the whole catalog, drops universities scoring 0, orders by
// score then cheaper tuition, and keeps the first topN. topN <= 0 yields
// an empty result.
func Rank(catalog []domain.University, c domain.MatchCriteria, topN int) []domain.UniversityMatch {
	matches := make([]domain.UniversityMatch, 0, len(catalog))
	for i := range catalog {
		res := Score(&catalog[i], c)
		// Penalties total at most 95, so this only matters if the table grows.
		if res.Score < minimumScore {
			continue
		}
		matches = append(matches, domain.UniversityMatch{
			University:   catalog[i],
			Score:        res.Score,
			Explanations: res.Explanations,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return tuitionSortKey(&matches[i].University) < tuitionSortKey(&matches[j].University)
	})

	if topN <= 0 {
		return []domain.UniversityMatch{}
	}
	if len(matches) > topN {
		matches = matches[:topN]
	}

	return matches
}
