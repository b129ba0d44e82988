package models

// Settings is the whole persisted aggregate: cycle model, history, plan
// selection and the user's custom catalogs. It is the single source of truth
// every derived value (cycle day, active rule, projected slots) is recomputed
// from; nothing derived is stored.
type Settings struct {
	CycleLength  int    `json:"cycleLength"`
	PeriodLength int    `json:"periodLength"`
	// LastPeriodStart mirrors the newest history entry's start date. Kept for
	// compatibility with exports from older versions.
	LastPeriodStart    string           `json:"lastPeriodStart,omitempty"`
	CycleHistory       []CycleEntry     `json:"cycleHistory"`
	SelectedPlanID     string           `json:"selectedPlanId"`
	IsFastingEnabled   bool             `json:"isFastingEnabled"`
	FastingWindowStart string           `json:"fastingWindowStart"` // HH:MM, legacy standard-window mirror
	FastingWindowEnd   string           `json:"fastingWindowEnd"`   // HH:MM
	CustomPlans        []Plan           `json:"customPlans"`
	CustomFastingTypes []FastingTypeDef `json:"customFastingTypes"`
}

// DefaultSettings is the state of a fresh install and the target of a reset.
func DefaultSettings() Settings {
	return Settings{
		CycleLength:        DefaultCycleLength,
		PeriodLength:       DefaultPeriodLength,
		CycleHistory:       []CycleEntry{},
		SelectedPlanID:     DefaultPlanID,
		IsFastingEnabled:   true,
		FastingWindowStart: "20:00",
		FastingWindowEnd:   "12:00",
		CustomPlans:        []Plan{},
		CustomFastingTypes: []FastingTypeDef{},
	}
}

// FillDefaults repairs an aggregate loaded from disk or import: absent
// collections become empty, zero lengths fall back to the defaults and an
// empty selection points at the built-in plan.
func (s *Settings) FillDefaults() {
	if s.CycleLength < 1 {
		s.CycleLength = DefaultCycleLength
	}
	if s.PeriodLength < 1 {
		s.PeriodLength = DefaultPeriodLength
	}
	if s.CycleHistory == nil {
		s.CycleHistory = []CycleEntry{}
	}
	if s.SelectedPlanID == "" {
		s.SelectedPlanID = DefaultPlanID
	}
	if s.FastingWindowStart == "" {
		s.FastingWindowStart = "20:00"
	}
	if s.FastingWindowEnd == "" {
		s.FastingWindowEnd = "12:00"
	}
	if s.CustomPlans == nil {
		s.CustomPlans = []Plan{}
	}
	if s.CustomFastingTypes == nil {
		s.CustomFastingTypes = []FastingTypeDef{}
	}
}
