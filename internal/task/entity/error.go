package entity

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrDuplicateRequest = errors.New("duplicate request")
)
