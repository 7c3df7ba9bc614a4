package domain

// AchievementType is the closed set of one-time achievements. Using a distinct
// type keeps the catalog and the grants table in sync at compile time; a typo'd
// identifier cannot silently fail to match.
type AchievementType string

const (
	AchievementCompanionCreated AchievementType = "companion_created"
	AchievementLessons5         AchievementType = "lessons_5"
	AchievementScience5         AchievementType = "science_5"
	AchievementLessons10        AchievementType = "lessons_10"
)

// XP paid the first (and only) time each achievement is granted.
const (
	XPCompanionCreated = 10
	XPLessons5         = 25
	XPScience5         = 30
	XPLessons10        = 55
)
