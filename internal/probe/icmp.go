// Package probe implements a best-effort ICMP reachability check used
// by the Discovery Engine to skip obviously-dead addresses before
// attempting an HTTP GET, grounded on the teacher's
// internal/device/wol.ping (golang.org/x/net/icmp echo request/reply).
package probe

import (
	"net"
	"os"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// Reachable sends a single ICMP echo request to addr and waits up to
// timeout for a reply. It reports false only when the request was sent
// and nothing came back before timeout; an IPv6 address or any error
// before that point (permission denied opening the raw socket, a failed
// marshal or write) reports true, so the caller goes on to its HTTP
// attempt. The Discovery Engine skips an address that reports false.
func Reachable(addr net.IP, timeout time.Duration) bool {
	if addr.To4() == nil {
		// IPv6 echo requires a distinct protocol/ICMPv6 type; skip the
		// probe and let the HTTP attempt decide.
		return true
	}

	conn, err := icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return true
	}
	defer conn.Close()

	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{ID: os.Getpid() & 0xffff, Seq: 1},
	}
	msgBytes, err := msg.Marshal(nil)
	if err != nil {
		return true
	}

	conn.SetDeadline(time.Now().Add(timeout))
	if _, err := conn.WriteTo(msgBytes, &net.IPAddr{IP: addr}); err != nil {
		return true
	}

	reply := make([]byte, 1500)
	_, _, err = conn.ReadFrom(reply)
	return err == nil
}
