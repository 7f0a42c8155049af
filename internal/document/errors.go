package document

import "fmt"

var (
	// ErrNotFound is returned when an operation references a URI with no
	// open document
	ErrNotFound = fmt.Errorf("document not open")

	// ErrStaleVersion is returned in strict mode when a change carries a
	// version no greater than the stored one
	ErrStaleVersion = fmt.Errorf("stale document version")
)
