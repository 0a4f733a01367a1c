package adapter

import "errors"

var (
	ErrNotFound     = errors.New("konvert: not found")
	ErrFailedLock   = errors.New("konvert: failed lock")
	ErrFailedUnlock = errors.New("konvert: failed unlock")
)
