package domain

import "errors"

var (
	ErrUniversityNotFound = errors.New("university not found")
	ErrProfileNotFound    = errors.New("student profile not found")
)
