package billing

import "errors"

var (
	// ErrStalePeriod is returned when markBilled is called with a period
	// that no longer matches the freshly computed action period. The
	// caller should re-fetch the organization and retry.
	ErrStalePeriod = errors.New("billing period is stale")

	// ErrNothingToUndo is returned when undo is called on an
	// organization that has never been billed
	ErrNothingToUndo = errors.New("no billed period to undo")
)
