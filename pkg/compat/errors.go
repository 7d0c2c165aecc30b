package compat

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported matches every *UnsupportedError.
	ErrUnsupported = errors.New("compat: operation unsupported on this host")
	// ErrInvalidArgument reports a nil host or an empty required argument.
	ErrInvalidArgument = errors.New("compat: invalid argument")
)

// UnsupportedError names the operation and the host type that lacks it.
type UnsupportedError struct {
	Operation string
	HostType  string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("compat: %s is not exposed by %s in any known shape", e.Operation, e.HostType)
}

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}
