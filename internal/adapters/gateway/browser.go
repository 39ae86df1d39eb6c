package gateway

import (
	"fmt"
	"os"

	"github.com/pkg/browser"

	"hpc-timeline/internal/core/ports"
)

// Ensure SystemBrowser implements BrowserOpener
var _ ports.BrowserOpener = (*SystemBrowser)(nil)

// for testing
var open = browser.OpenURL

// SystemBrowser opens URLs with the platform's default browser
type SystemBrowser struct{}

// NewSystemBrowser creates a browser opener
func NewSystemBrowser() *SystemBrowser {
	// stdout carries only the startup banner
	browser.Stdout = os.Stderr
	return &SystemBrowser{}
}

// OpenURL launches url in the default browser
func (b *SystemBrowser) OpenURL(url string) error {
	if err := open(url); err != nil {
		return fmt.Errorf("open browser at %s: %w", url, err)
	}
	return nil
}
