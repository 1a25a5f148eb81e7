package domain

// MatchCriteria groups the four independently toggled scoring modules.
// A missing or disabled module has no effect on the score.
type MatchCriteria struct {
	Academics  Optional[AcademicsModule]  `json:"academics"`
	Financials Optional[FinancialsModule] `json:"financials"`
	Lifestyle  Optional[LifestyleModule]  `json:"lifestyle"`
	Future     Optional[FutureModule]     `json:"future"`
}

type AcademicsModule struct {
	Enabled Optional[bool]             `json:"enabled"`
	Filters Optional[AcademicsFilters] `json:"filters"`
}

type AcademicsFilters struct {
	MinGPA Optional[float64] `json:"minGpa"`
	// TestPolicy is "no-test", "requires-test" or a test name such as "sat".
	TestPolicy Optional[string] `json:"testPolicy"`
}

type FinancialsModule struct {
	Enabled Optional[bool]              `json:"enabled"`
	Filters Optional[FinancialsFilters] `json:"filters"`
}

type FinancialsFilters struct {
	MaxBudget Optional[float64] `json:"maxBudget"`
}

type LifestyleModule struct {
	Enabled Optional[bool]             `json:"enabled"`
	Filters Optional[LifestyleFilters] `json:"filters"`
}

type LifestyleFilters struct {
	Countries Optional[[]string] `json:"countries"`
}

type FutureModule struct {
	Enabled Optional[bool]          `json:"enabled"`
	Filters Optional[FutureFilters] `json:"filters"`
}

type FutureFilters struct {
	MinVisaMonths Optional[float64] `json:"minVisaMonths"`
}

// ActiveAcademics returns the module filters when the module is present and enabled.
func (c MatchCriteria) ActiveAcademics() (AcademicsFilters, bool) {
	m, ok := c.Academics.Get()
	if !ok || !isOn(m.Enabled) {
		return AcademicsFilters{}, false
	}
	f, _ := m.Filters.Get()
	return f, true
}

func (c MatchCriteria) ActiveFinancials() (FinancialsFilters, bool) {
	m, ok := c.Financials.Get()
	if !ok || !isOn(m.Enabled) {
		return FinancialsFilters{}, false
	}
	f, _ := m.Filters.Get()
	return f, true
}

func (c MatchCriteria) ActiveLifestyle() (LifestyleFilters, bool) {
	m, ok := c.Lifestyle.Get()
	if !ok || !isOn(m.Enabled) {
		return LifestyleFilters{}, false
	}
	f, _ := m.Filters.Get()
	return f, true
}

func (c MatchCriteria) ActiveFuture() (FutureFilters, bool) {
	m, ok := c.Future.Get()
	if !ok || !isOn(m.Enabled) {
		return FutureFilters{}, false
	}
	f, _ := m.Filters.Get()
	return f, true
}

func isOn(flag Optional[bool]) bool {
	v, ok := flag.Get()
	return ok && v
}

type ScoreResult struct {
	Score        int      `json:"score"`
	Explanations []string `json:"explanations"`
}

// UniversityMatch is a catalog entry annotated with its compatibility score.
type UniversityMatch struct {
	University
	Score        int      `json:"score"`
	Explanations []string `json:"explanations"`
}
