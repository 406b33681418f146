package services

import "errors"

// Validation outcomes. These are expected results of user input, not faults —
// handlers map them to 4xx responses with user-facing messages.
var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidReferralCode = errors.New("no referrer found with the provided code")
	ErrSelfReferral        = errors.New("users cannot refer themselves")
	ErrReferralCapReached  = errors.New("referrer has reached maximum referrals")
	ErrNoSpinsLeft         = errors.New("no spins remaining")
	ErrAlreadyPlayedToday  = errors.New("daily quiz already played today")
	ErrSurveySubmitted     = errors.New("survey already submitted")
	ErrUnknownGame         = errors.New("unknown game key")
)
