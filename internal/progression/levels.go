package progression

// LevelTier maps an XP threshold to a level number and display title.
type LevelTier struct {
	Level      int
	XPRequired int
	Title      string
}

// levelTable is strictly ascending by XPRequired. An actor below the first
// threshold has level 0 and no title; levels only ever increase because
// total XP never decreases.
var levelTable = []LevelTier{
	{Level: 1, XPRequired: 50, Title: "Новичок"},
	{Level: 2, XPRequired: 100, Title: "Исследователь"},
	{Level: 3, XPRequired: 200, Title: "Активист"},
	{Level: 4, XPRequired: 300, Title: "Профи"},
	{Level: 5, XPRequired: 400, Title: "Легенда JumysAl"},
}

// LevelFor returns the highest level whose threshold totalXP has reached.
func LevelFor(totalXP int) int {
	level := 0
	for _, tier := range levelTable {
		if totalXP < tier.XPRequired {
			break
		}
		level = tier.Level
	}
	return level
}

// TitleFor returns the display title for a level, empty below the first tier.
func TitleFor(level int) string {
	for _, tier := range levelTable {
		if tier.Level == level {
			return tier.Title
		}
	}
	return ""
}
