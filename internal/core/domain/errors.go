package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrForbidden          = errors.New("access forbidden")

	// ErrNotAdmin is returned by privileged operations when the caller's
	// store-resolved role is not admin. The message is part of the wire
	// contract of the delete endpoint.
	ErrNotAdmin = errors.New("Only admins can delete users")

	// ErrMissingUserID is returned when a privileged operation is invoked
	// without a target user id.
	ErrMissingUserID = errors.New("User ID is required")
)
