package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalid2FACode     = errors.New("invalid 2FA code")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrAlreadyMember      = errors.New("user is already a member of this project")
	ErrMemberNotFound     = errors.New("user is not a member of this project")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAssigneeNotFound   = errors.New("assigned user not found")
	ErrInvalidTaskStatus  = errors.New("invalid task status")
	ErrInvalidProjectData = errors.New("invalid project data")
)
