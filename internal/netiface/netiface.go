// Package netiface resolves a named network interface for the
// Discovery Engine's disable-list and the device-side mDNS responder's
// bind interface, grounded on the teacher's go.mod dependency on
// vishvananda/netlink (SPEC_FULL.md §4.7/A5).
package netiface

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"

	"ascotgo/internal/common/logging"
)

// Error reports that a named interface could not be resolved.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("netiface: resolving %q: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Resolve validates that name names a real network interface, using
// netlink.LinkByName, and returns the stdlib net.Interface the rest of
// the framework operates on (zeroconf.Register's interface list,
// net.InterfaceByIndex, etc).
func Resolve(name string) (net.Interface, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return net.Interface{}, &Error{Name: name, Err: err}
	}

	iface, err := net.InterfaceByIndex(link.Attrs().Index)
	if err != nil {
		return net.Interface{}, &Error{Name: name, Err: err}
	}
	return *iface, nil
}

// ResolveAll validates a list of named interfaces, logging a warning
// and skipping (rather than failing) any name that does not resolve —
// per SPEC_FULL.md §4.7, an unresolvable disable-list entry never
// blocks discovery, it only fails to exclude that interface.
func ResolveAll(names []string) []net.Interface {
	out := make([]net.Interface, 0, len(names))
	for _, name := range names {
		iface, err := Resolve(name)
		if err != nil {
			logging.Log(logging.Warn, "netiface: %v, discovery proceeds without excluding it", err)
			continue
		}
		out = append(out, iface)
	}
	return out
}
