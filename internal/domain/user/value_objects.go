package user

import "errors"

var (
	ErrInvalidRole = errors.New("invalid role")
	ErrNotOwner    = errors.New("actor is neither the requester nor an admin")
)
