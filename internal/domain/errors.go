package domain

import "errors"

// Referral and ledger rule violations. Handlers map these to user-visible
// notices; anything else that comes out of the engine is a store failure.
var (
	ErrInvalidCode   = errors.New("invalid referral code")
	ErrAlreadyUsed   = errors.New("this referral code has already been used")
	ErrSelfReferral  = errors.New("you cannot use your own referral code")
	ErrInvalidAmount = errors.New("xp amount must be positive")
)
