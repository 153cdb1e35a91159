package scene

import (
	"errors"
	"fmt"
)

// Errors returned by scene operations.
var (
	// ErrEmptyName indicates an object without a name.
	ErrEmptyName = errors.New("object name is empty")

	// ErrDuplicateName indicates an object name is already used in the scene.
	ErrDuplicateName = errors.New("duplicate object name")

	// ErrObjectNotFound indicates a name does not resolve to an object.
	ErrObjectNotFound = errors.New("object not found")

	// ErrForeignParent indicates a parent that is not part of the scene.
	ErrForeignParent = errors.New("parent not in scene")

	// ErrInvalidBounds indicates a rectangle without area.
	ErrInvalidBounds = errors.New("invalid bounds")
)

// LoadError represents an error while loading a scene file.
type LoadError struct {
	// Path is the file that failed to load. Empty for in-memory data.
	Path string
	// Object is the name of the offending object, if any.
	Object string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Object != "" {
		return fmt.Sprintf("load scene %s: object %q: %v", path, e.Object, e.Err)
	}
	return fmt.Sprintf("load scene %s: %v", path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
