package models

import "errors"

var (
	ErrInvalidID      = errors.New("invalid player id")
	ErrInvalidPlayer  = errors.New("invalid player")
	ErrInvalidQuery   = errors.New("invalid query parameter")
	ErrPlayerNotFound = errors.New("player not found")
)
