package analysis

import "errors"

// Pipeline error taxonomy. ConfigError lives in config (startup-fatal),
// FetchError and ExtractionError in profile; these cover the pipeline's own
// decisions. Every error raised while resolving a selection is converted to a
// single user-facing message at the pipeline boundary.
var (
	// ErrQuotaExceeded means a non-VIP user has consumed the free limit.
	// No side effects: nothing is fetched and nothing is incremented.
	ErrQuotaExceeded = errors.New("free analysis quota exhausted")

	// ErrPayloadMalformed means a selection payload failed structural
	// validation or named an unknown country. No side effects.
	ErrPayloadMalformed = errors.New("selection payload is malformed")
)
