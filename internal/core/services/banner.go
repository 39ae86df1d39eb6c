package services

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"hpc-timeline/internal/config"
)

var stopHint = color.New(color.Faint)

// WriteBanner prints the startup lines announcing where the server can be reached
func WriteBanner(w io.Writer, banner config.BannerConfig, port int) error {
	if _, err := fmt.Fprintf(w, "🚀 Server running at %s\n", banner.URL(port)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "📊 View the %s at: %s\n", banner.Title, banner.EntryURL(port)); err != nil {
		return err
	}

	_, err := stopHint.Fprintln(w, "Press Ctrl+C to stop the server")
	return err
}
