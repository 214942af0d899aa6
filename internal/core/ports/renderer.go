package ports

import (
	"time"

	"go.trai.ch/cagesync/internal/core/domain"
)

// Renderer is the abstraction for user-facing output.
// It decouples the app layer from presentation so reports and step timings
// can be printed as text or JSON.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnStepStart is called when a traced step begins.
	// spanID: unique identifier for this step
	// parentID: spanID of the parent step (empty if root)
	// name: human-readable step name
	OnStepStart(spanID, parentID, name string, startTime time.Time)

	// OnStepComplete is called when a traced step finishes.
	// err: nil if successful, error otherwise
	OnStepComplete(spanID string, endTime time.Time, err error)

	// RenderReport prints the outcome of a synchronization or reset pass.
	RenderReport(report *domain.SyncReport)

	// RenderStatus prints the current registry.
	RenderStatus(registry *domain.Registry)
}
