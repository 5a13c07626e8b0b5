package container

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("container: not found")

	// ErrContainer matches every *ContainerError via errors.Is.
	ErrContainer = errors.New("container: misconfigured")
)

// NotFoundError is returned when no definition, tag, provider or delegate
// can supply an id.
type NotFoundError struct {
	ID     string
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("container: %s (%s)", e.Reason, e.ID)
	}
	return fmt.Sprintf("container: alias (%s) is not being managed by the container or delegates", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ContainerError signals a configuration fault, such as a provider that
// claimed an id and never registered it.
type ContainerError struct {
	ID     string
	Reason string
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("container: %s (%s)", e.Reason, e.ID)
}

// Is reports whether target is ErrContainer.
func (e *ContainerError) Is(target error) bool { return target == ErrContainer }

func notFound(id, reason string) error {
	return &NotFoundError{ID: id, Reason: reason}
}

func misconfigured(id, reason string) error {
	return &ContainerError{ID: id, Reason: reason}
}

// IsNotFound reports whether err (or anything it wraps) is a NotFoundError.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
