package domain

// Subscription plans reported by the entitlement layer.
const (
	PlanFree = "free"
	PlanCore = "core"
	PlanPro  = "pro"
)

// Feature flags that bound companion creation for non-pro plans.
// A user with neither flag (and no pro unlock) has a limit of zero.
const (
	Feature3CompanionLimit  = "3_companion_limit"
	Feature10CompanionLimit = "10_companion_limit"
)

const (
	// MaxXP is the ledger ceiling; reaching it unlocks pro-equivalent access.
	MaxXP = 100
	// ReferralXP is paid to a code's creator on first redemption.
	ReferralXP = 45
	// FreeSessionLimit caps lesson sessions for users without a paid plan or MaxXP.
	FreeSessionLimit = 10
)

// SubjectScience is matched exactly (case-sensitive) when counting science lessons.
const SubjectScience = "science"

// Subjects offered in the companion catalog.
var Subjects = []string{"maths", "language", "science", "history", "coding", "economics"}
