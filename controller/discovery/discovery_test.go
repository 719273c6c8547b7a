package discovery

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ip(s string) net.IP { return net.ParseIP(s) }

// S6: two candidates sharing a port and at least one IP are deduped to
// one.
func TestIsDuplicateSharedPortAndAddress(t *testing.T) {
	accepted := []candidate{{fullName: "a._ascot._tcp.local.", port: 3000, addresses: []net.IP{ip("192.168.1.10")}}}
	b := candidate{fullName: "b._ascot._tcp.local.", port: 3000, addresses: []net.IP{ip("192.168.1.10"), ip("10.0.0.5")}}

	assert.True(t, isDuplicate(accepted, b))
}

func TestIsDuplicateIdenticalFullName(t *testing.T) {
	accepted := []candidate{{fullName: "light._ascot._tcp.local.", port: 3000, addresses: []net.IP{ip("192.168.1.10")}}}
	b := candidate{fullName: "light._ascot._tcp.local.", port: 4000, addresses: []net.IP{ip("192.168.1.11")}}

	assert.True(t, isDuplicate(accepted, b))
}

func TestIsDuplicateFalseForDistinctServices(t *testing.T) {
	accepted := []candidate{{fullName: "a._ascot._tcp.local.", port: 3000, addresses: []net.IP{ip("192.168.1.10")}}}
	b := candidate{fullName: "b._ascot._tcp.local.", port: 3001, addresses: []net.IP{ip("192.168.1.11")}}

	assert.False(t, isDuplicate(accepted, b))
}
