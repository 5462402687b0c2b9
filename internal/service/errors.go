package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("permission denied")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSubjectMismatch    = errors.New("token subject mismatch")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
)
