// Package mdns advertises a device on the LAN via mDNS-SD, per
// spec.md §6, using github.com/grandcat/zeroconf (the mDNS-SD library
// used elsewhere in the retrieved pack for Matter device discovery).
package mdns

import (
	"fmt"
	"net"

	"github.com/grandcat/zeroconf"
)

const (
	defaultDomain          = "ascot"
	defaultServiceProtocol = "tcp"
	defaultTLD             = "local"
	defaultWellKnownName   = "ascot"
)

// Config configures the advertised service, per spec.md §6.
type Config struct {
	Instance        string
	Domain          string
	ServiceProtocol string
	TLD             string
	Port            int
	Scheme          string // "http" or "https"
	WellKnownName   string
	Interfaces      []net.Interface
}

// serviceTypeParts returns the zeroconf service string ("_<domain>._<proto>")
// and the top-level domain ("local"), applying spec.md §6's defaults.
func (c Config) serviceTypeParts() (service, tld string) {
	domain, proto, tld := c.Domain, c.ServiceProtocol, c.TLD
	if domain == "" {
		domain = defaultDomain
	}
	if proto == "" {
		proto = defaultServiceProtocol
	}
	if tld == "" {
		tld = defaultTLD
	}
	return fmt.Sprintf("_%s._%s", domain, proto), tld
}

// Responder wraps a running zeroconf advertisement. Shutdown stops it.
type Responder struct {
	server *zeroconf.Server
}

// Register advertises cfg's device on the LAN. The TXT record carries
// exactly the two properties spec.md §6 names: scheme and path (the
// well-known redirect URI, defaulting to /.well-known/ascot).
func Register(cfg Config) (*Responder, error) {
	service, tld := cfg.serviceTypeParts()

	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "http"
	}
	wellKnown := cfg.WellKnownName
	if wellKnown == "" {
		wellKnown = defaultWellKnownName
	}

	text := []string{
		fmt.Sprintf("scheme=%s", scheme),
		fmt.Sprintf("path=/.well-known/%s", wellKnown),
	}

	server, err := zeroconf.Register(cfg.Instance, service, tld+".", cfg.Port, text, cfg.Interfaces)
	if err != nil {
		return nil, fmt.Errorf("mdns: registering service: %w", err)
	}
	return &Responder{server: server}, nil
}

// Shutdown unregisters the advertisement and releases the responder's
// UDP socket.
func (r *Responder) Shutdown() {
	if r == nil || r.server == nil {
		return
	}
	r.server.Shutdown()
}
