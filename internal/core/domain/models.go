// Package domain contains core value types
// These models are infrastructure-agnostic
package domain

import "fmt"

// ResponseHeader is a single header field added to outgoing responses
type ResponseHeader struct {
	Name  string
	Value string
}

// Header name constants
const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderCacheControl = "Cache-Control"
)

// DevelopmentHeaders are added to every response regardless of path, method or status
// Permissive CORS for local development, and caching fully disabled
var DevelopmentHeaders = []ResponseHeader{
	{Name: HeaderAllowOrigin, Value: "*"},
	{Name: HeaderAllowMethods, Value: "GET"},
	{Name: HeaderCacheControl, Value: "no-store, no-cache, must-revalidate"},
}

// PortOwner identifies the process listening on a TCP port
type PortOwner struct {
	PID  int32
	Name string // Empty if the process name could not be read
}

// String formats the owner as "name (pid N)"
func (o PortOwner) String() string {
	if o.Name == "" {
		return fmt.Sprintf("pid %d", o.PID)
	}
	return fmt.Sprintf("%s (pid %d)", o.Name, o.PID)
}
