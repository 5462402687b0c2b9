package model

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrConflict  = errors.New("unique constraint violated")
	ErrEmptyBody = errors.New("body is empty")
)
