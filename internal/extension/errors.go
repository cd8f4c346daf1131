package extension

import "fmt"

// ValidationError reports an extension that does not satisfy an interface
// required by its category. Registration is aborted without mutating the
// category when this is returned.
type ValidationError struct {
	Category  string
	Extension string
	Interface string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("extension %q does not implement interface %q required by category %q",
		e.Extension, e.Interface, e.Category)
}

// NoDefaultError reports a request for a category's default extension before
// one was selected, or after the selected id was filtered out of the
// category. This is a caller bug, not a recoverable condition.
type NoDefaultError struct {
	Category string
}

// Error implements the error interface for NoDefaultError.
func (e *NoDefaultError) Error() string {
	return fmt.Sprintf("category %q has no default extension selected", e.Category)
}
