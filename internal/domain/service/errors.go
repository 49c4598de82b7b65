package service

import "errors"

var (
	// ErrConfiguration marks invalid engine configuration such as an unknown environment tag.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotSupported marks a backend that is an intentional placeholder.
	ErrNotSupported = errors.New("not supported")
	// ErrNotImplemented marks an execution backend that is declared but not built yet.
	ErrNotImplemented = errors.New("not implemented")
)
