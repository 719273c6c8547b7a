// Package device holds the controller-side Device and
// NetworkInformation types materialized by the Discovery Engine (C4),
// grounded on src/device.rs.
package device

import (
	"net"

	device "ascotgo/internal/device"

	"ascotgo/controller/request"
)

// NetworkInformation describes a discovered device's mDNS-SD presence:
// the advertised service name, every resolved address, the port, the
// TXT properties, and the address that most recently answered an HTTP
// request.
type NetworkInformation struct {
	Name                  string
	Addresses             []net.IP
	Port                  uint16
	Properties            map[string]string
	LastReachableAddress  string
}

// Device is the controller-side materialization of a discovered
// device: its network presence, its descriptor description, and one
// Request per declared route, keyed by route path.
type Device struct {
	NetworkInfo NetworkInformation
	Description string
	Kind        device.Kind
	Requests    map[string]*request.Request
}

// New builds a Device from a fetched descriptor, constructing one
// Request per route config, keyed by the route's path.
func New(info NetworkInformation, data device.Data, address string) *Device {
	requests := make(map[string]*request.Request, data.RouteConfigs.Len())
	for _, cfg := range data.RouteConfigs.All() {
		requests[cfg.Data.Path] = request.New(address, data.MainRoute, data.Environment, cfg)
	}
	return &Device{
		NetworkInfo: info,
		Description: data.Description,
		Kind:        data.Kind,
		Requests:    requests,
	}
}
