package shelldisplay

import "errors"

// Errors returned by the display pipeline. Callers should test with
// errors.Is since most paths wrap these with additional context.
var (
	// ErrInvalidParameter indicates a caller-supplied argument is out of range or malformed.
	ErrInvalidParameter = errors.New("shelldisplay: invalid parameter")

	// ErrNotInitialized indicates the controller was used before New completed.
	ErrNotInitialized = errors.New("shelldisplay: not initialized")

	// ErrAllocationFailed indicates a cache slot could not be obtained.
	// Display operations recover from this locally; only caching is skipped.
	ErrAllocationFailed = errors.New("shelldisplay: allocation failed")

	// ErrCompositionFailed indicates the display content could not be produced
	// (e.g., the cursor offset does not fall inside the composed output).
	ErrCompositionFailed = errors.New("shelldisplay: composition failed")

	// ErrBufferTooSmall indicates the destination buffer cannot hold the composed content.
	ErrBufferTooSmall = errors.New("shelldisplay: buffer too small")

	// ErrConfigurationInvalid indicates a configuration value failed validation.
	ErrConfigurationInvalid = errors.New("shelldisplay: configuration invalid")
)
