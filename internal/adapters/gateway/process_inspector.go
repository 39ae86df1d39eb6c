// Package gateway implements adapters to the operating system
package gateway

import (
	"context"
	"fmt"
	"log/slog"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"hpc-timeline/internal/core/domain"
	"hpc-timeline/internal/core/ports"
)

// Ensure ProcessInspector implements PortInspector
var _ ports.PortInspector = (*ProcessInspector)(nil)

const statusListen = "LISTEN"

// ProcessInspector reads the system connection table to find port owners
type ProcessInspector struct{}

// NewProcessInspector creates a new process inspector
func NewProcessInspector() *ProcessInspector {
	return &ProcessInspector{}
}

// FindListener returns the process listening on the TCP port
// Returns nil without error if no listener with a known PID is visible
// (other users' sockets usually report PID 0 without elevated privileges)
func (p *ProcessInspector) FindListener(ctx context.Context, port int) (*domain.PortOwner, error) {
	conns, err := psnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return nil, fmt.Errorf("list tcp connections: %w", err)
	}

	for _, conn := range conns {
		if conn.Status != statusListen || conn.Laddr.Port != uint32(port) || conn.Pid == 0 {
			continue
		}

		owner := &domain.PortOwner{PID: conn.Pid}

		proc, err := process.NewProcessWithContext(ctx, conn.Pid)
		if err != nil {
			slog.Debug("Port owner exited before inspection", "pid", conn.Pid, "error", err)
			return owner, nil
		}

		if name, err := proc.NameWithContext(ctx); err == nil {
			owner.Name = name
		}
		return owner, nil
	}

	return nil, nil
}
