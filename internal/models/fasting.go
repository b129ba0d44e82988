package models

// Built-in fasting type ids. These entries are immutable and always resolvable.
const (
	TypeStandard   = "STANDARD"
	TypeLimitHours = "LIMIT_HOURS"
	TypeNoFasting  = "NO_FASTING"
)

// FastingSlot is one fasting interval anchored to day offsets within a
// fasting type's window (day 0 is the first day of the window).
type FastingSlot struct {
	StartDayOffset int    `json:"startDayOffset"`
	StartTime      string `json:"startTime"` // HH:MM
	EndDayOffset   int    `json:"endDayOffset"`
	EndTime        string `json:"endTime"` // HH:MM
}

// FastingTypeDef describes a fasting regimen. WindowHours is a multiple of 24;
// an empty Slots list means no scheduled fasting.
type FastingTypeDef struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	WindowHours int           `json:"windowDuration"`
	Slots       []FastingSlot `json:"slots"`
	Color       string        `json:"color,omitempty"`
	Description string        `json:"description,omitempty"`
	IsSystem    bool          `json:"isSystem,omitempty"`
}

// WindowDays is the window length in whole days, never less than one.
func (d FastingTypeDef) WindowDays() int {
	days := (d.WindowHours + 23) / 24
	if days < 1 {
		days = 1
	}
	return days
}

// BuiltInFastingTypes returns the three system definitions. Callers get a
// fresh slice so stored settings can never alias the built-ins.
func BuiltInFastingTypes() []FastingTypeDef {
	return []FastingTypeDef{
		{
			ID:          TypeStandard,
			Name:        "Standard (16:8)",
			WindowHours: 24,
			Slots: []FastingSlot{
				{StartDayOffset: 0, StartTime: "20:00", EndDayOffset: 1, EndTime: "12:00"},
			},
			Color:       "205",
			Description: "Fasting from 20:00 to 12:00 next day.",
			IsSystem:    true,
		},
		{
			ID:          TypeLimitHours,
			Name:        "Gentle Limit (12:12)",
			WindowHours: 24,
			Slots: []FastingSlot{
				{StartDayOffset: 0, StartTime: "20:00", EndDayOffset: 1, EndTime: "08:00"},
			},
			Color:       "63",
			Description: "Fasting from 20:00 to 08:00 next day.",
			IsSystem:    true,
		},
		{
			ID:          TypeNoFasting,
			Name:        "No Fasting",
			WindowHours: 24,
			Slots:       nil,
			Color:       "70",
			Description: "No scheduled fasting.",
			IsSystem:    true,
		},
	}
}
