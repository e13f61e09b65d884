// Package export holds what the PDF and DOCX exporters share: the failure
// taxonomy, the per-kind re-entrancy guard and output file naming.
package export

import (
	"errors"
	"fmt"
)

var (
	// ErrCapabilityMissing means a rendering or packing capability is not
	// available. It is returned before any side effect.
	ErrCapabilityMissing = errors.New("export capability unavailable")

	// ErrTargetNotFound means the page root to rasterize is absent.
	ErrTargetNotFound = errors.New("export target not found")

	// ErrExportFailed wraps failures after work began: rasterization,
	// slicing or document packing.
	ErrExportFailed = errors.New("export failed")

	// ErrExportInProgress means an export of the same kind is already running.
	ErrExportInProgress = errors.New("export already in progress")
)

// Failed wraps err as a mid-pipeline failure at step.
func Failed(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrExportFailed, step, err)
}

// Notice returns the single user-facing message for a failed export attempt.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrExportInProgress):
		return "An export of this type is already running. Please wait for it to finish."
	case errors.Is(err, ErrCapabilityMissing):
		return "Export is not available right now: the document renderer could not be started."
	case errors.Is(err, ErrTargetNotFound):
		return "Export failed: the resume preview could not be found."
	}
	return "Sorry, there was an error generating your document. Please try again."
}
