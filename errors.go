package bibinject

import "errors"

// Sentinel errors for library operations.
var (
	// Bibliography parsing errors.
	ErrMalformedBlock   = errors.New("malformed block header")
	ErrUnbalancedBraces = errors.New("unbalanced braces")
	ErrMissingKey       = errors.New("missing citation key")
	ErrMalformedMacro   = errors.New("malformed string macro")

	// Rendering errors.
	ErrStyleBlockNotFound = errors.New("style block not found")

	// Injection errors.
	ErrTargetNotFound = errors.New("target element not found")
	ErrInjection      = errors.New("target element block extraction failed")

	// Input validation errors.
	ErrEmptyHost     = errors.New("host HTML cannot be empty")
	ErrEmptyBib      = errors.New("bibliography text cannot be empty")
	ErrEmptyTargetID = errors.New("target id cannot be empty")
	ErrEmptyStyle    = errors.New("style name cannot be empty")
	ErrInvalidOrder  = errors.New("invalid order")
	ErrNoEntries     = errors.New("no entries parsed from bibliography")
)
