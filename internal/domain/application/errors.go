package application

import "errors"

var (
	// ErrApplicationNotFound indicates the application doesn't exist.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrForbidden indicates the actor owns neither the application nor the
	// project it targets.
	ErrForbidden = errors.New("application belongs to another user")
	// ErrInvalidTransition indicates the application is not in the status the
	// operation requires; the caller should re-fetch.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrAlreadyApplied indicates the student already applied to the project.
	ErrAlreadyApplied = errors.New("already applied to this project")
	// ErrNoResume indicates the student has no résumé on file.
	ErrNoResume = errors.New("a resume is required to apply")
	// ErrInvalidInput indicates invalid application input.
	ErrInvalidInput = errors.New("invalid application input")
)
