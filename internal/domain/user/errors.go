package user

import "errors"

var (
	ErrUserNotFound               = errors.New("user not found")
	ErrEmailAlreadyExists         = errors.New("email already registered")
	ErrOrganizerPrivilegeRequired = errors.New("organizer privilege required")
)
