// Package ports defines interfaces for dependency inversion
// Core defines contracts, adapters implement them
package ports

import (
	"context"

	"hpc-timeline/internal/core/domain"
)

// PortInspector finds which process holds a TCP port
// Used to explain bind failures
type PortInspector interface {
	// FindListener returns the process listening on port, or nil if none is found
	FindListener(ctx context.Context, port int) (*domain.PortOwner, error)
}

// BrowserOpener launches a URL in the user's browser
type BrowserOpener interface {
	OpenURL(url string) error
}
