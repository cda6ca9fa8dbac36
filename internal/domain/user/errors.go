package user

import "errors"

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken indicates another user already registered the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidInput indicates invalid user input.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrNoResume indicates the student has no résumé on file.
	ErrNoResume = errors.New("no resume on file")
)
