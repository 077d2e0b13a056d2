package domain

// PresetHabit is a suggested habit offered to first-time users.
type PresetHabit struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// PresetHabits is the catalog offered during onboarding.
var PresetHabits = []PresetHabit{
	{ID: "water", Name: "Drink Water", Category: "wellness"},
	{ID: "exercise", Name: "Daily Exercise", Category: "fitness"},
	{ID: "meditation", Name: "Meditation", Category: "wellness"},
	{ID: "reading", Name: "Read Books", Category: "learning"},
	{ID: "coding", Name: "Code Practice", Category: "learning"},
	{ID: "journaling", Name: "Write Journal", Category: "lifestyle"},
	{ID: "sleep", Name: "Sleep Early", Category: "wellness"},
	{ID: "planning", Name: "Plan Tomorrow", Category: "productivity"},
}

// PresetByID looks up a preset habit by its catalog id.
func PresetByID(id string) (PresetHabit, bool) {
	for _, p := range PresetHabits {
		if p.ID == id {
			return p, true
		}
	}
	return PresetHabit{}, false
}
