package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput indicates a request value failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotEligible indicates coupon issuance was requested below the stamp threshold.
	ErrNotEligible = errors.New("not eligible")
	// ErrCardFull indicates a stamp addition on a completed card that must be redeemed first.
	ErrCardFull = errors.New("stamp card full")
	// ErrAlreadyGranted indicates a birthday coupon was already issued this year.
	ErrAlreadyGranted = errors.New("already granted")
	// ErrConflict indicates a conditional update lost a race; callers retry once.
	ErrConflict = errors.New("version conflict")
)
