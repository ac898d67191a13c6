package document

import "context"

// Presenter displays an assembled artifact on some surface (an HTTP response,
// a popup window, a file). Rendering stays pure; the presenter owns the side
// effect.
type Presenter interface {
	Display(ctx context.Context, artifact Artifact) error
}
