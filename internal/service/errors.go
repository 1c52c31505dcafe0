package service

import "errors"

var (
	// ErrNotFound covers missing events, users and participants' parent rows.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the policy denies the caller.
	ErrForbidden = errors.New("forbidden")
)
