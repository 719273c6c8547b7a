// Package discovery implements the Discovery Engine (C4): mDNS-SD
// browsing, deduplication, and per-device descriptor fetch, grounded on
// the teacher's concurrent fan-out pattern (internal/device/meross.go's
// multiPost) and on grandcat/zeroconf usage observed in the retrieved
// pack (soothill-matter-data-logger's discovery.go).
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"

	"ascotgo/internal/common/logging"
	internaldevice "ascotgo/internal/device"
	"ascotgo/internal/probe"

	"ascotgo/controller/device"
)

// Config carries a controller's mDNS-SD browse parameters, per
// spec.md §4.4.
type Config struct {
	Domain          string
	ServiceProtocol string // "tcp" or "udp"
	TLD             string
	Timeout         time.Duration

	// Discover does not read DisableIPv6, DisabledAddresses or
	// DisabledInterfaceName: every resolved address of every accepted
	// service is kept, on every interface.
	DisableIPv6            bool
	DisabledAddresses      []string
	DisabledInterfaceName  string
}

// DefaultConfig returns spec.md §4.4's defaults: domain "ascot",
// protocol "tcp", tld "local", 2s timeout.
func DefaultConfig() Config {
	return Config{Domain: "ascot", ServiceProtocol: "tcp", TLD: "local", Timeout: 2 * time.Second}
}

// serviceType returns the zeroconf service string ("_<domain>._<proto>");
// the top-level domain is passed to Browse separately, as in
// internal/mdns.
func (c Config) serviceType() string {
	return fmt.Sprintf("_%s._%s", c.Domain, c.ServiceProtocol)
}

type candidate struct {
	fullName  string
	port      int
	addresses []net.IP
	props     map[string]string
}

// Discover browses for the configured service type for the duration of
// Config.Timeout, deduplicates the resolved services, fetches each
// survivor's descriptor over HTTP, and returns one controller-side
// Device per successfully-fetched descriptor, in first-success order.
// Only a failure of the mDNS subsystem itself (resolver construction,
// browse start) is returned as an error; a single device's descriptor
// fetch failing is logged and that device is skipped, per spec.md
// §4.4's failure model.
func Discover(ctx context.Context, cfg Config, client *http.Client) ([]*device.Device, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("discovery: creating resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry, 16)
	accepted := make([]candidate, 0, 16)

	browseCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		for entry := range entries {
			c, ok := accept(entry)
			if !ok {
				continue
			}
			if isDuplicate(accepted, c) {
				continue
			}
			accepted = append(accepted, c)
		}
	}()

	if err := resolver.Browse(browseCtx, cfg.serviceType(), cfg.TLD+".", entries); err != nil {
		return nil, fmt.Errorf("discovery: starting browse: %w", err)
	}

	<-browseCtx.Done()
	collectWg.Wait()

	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	type result struct {
		index int
		dev   *device.Device
	}

	results := make(chan result, len(accepted))
	var fetchWg sync.WaitGroup
	for i, c := range accepted {
		fetchWg.Add(1)
		go func(i int, c candidate) {
			defer fetchWg.Done()
			dev := fetchDevice(client, c)
			if dev != nil {
				results <- result{index: i, dev: dev}
			}
		}(i, c)
	}

	go func() {
		fetchWg.Wait()
		close(results)
	}()

	ordered := make([]*device.Device, len(accepted))
	found := 0
	for r := range results {
		ordered[r.index] = r.dev
		found++
	}

	devices := make([]*device.Device, 0, found)
	for _, d := range ordered {
		if d != nil {
			devices = append(devices, d)
		}
	}
	return devices, nil
}

// accept applies spec.md §4.4 step 2's per-entry filters: drop entries
// with no resolved address, and drop entries missing the scheme TXT
// property.
func accept(entry *zeroconf.ServiceEntry) (candidate, bool) {
	addrs := make([]net.IP, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	addrs = append(addrs, entry.AddrIPv4...)
	addrs = append(addrs, entry.AddrIPv6...)
	if len(addrs) == 0 {
		return candidate{}, false
	}

	props := map[string]string{}
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			props[parts[0]] = parts[1]
		}
	}
	if _, ok := props["scheme"]; !ok {
		return candidate{}, false
	}

	return candidate{
		fullName:  fmt.Sprintf("%s.%s%s", entry.Instance, entry.Service, entry.Domain),
		port:      entry.Port,
		addresses: addrs,
		props:     props,
	}, true
}

// isDuplicate implements spec.md §4.4 step 2's dedup rule and invariant
// 7/S6: c duplicates a previously-accepted candidate iff they share a
// port and at least one IP address, or their full service names match.
func isDuplicate(accepted []candidate, c candidate) bool {
	for _, a := range accepted {
		if a.fullName == c.fullName {
			return true
		}
		if a.port == c.port && sharesAddress(a.addresses, c.addresses) {
			return true
		}
	}
	return false
}

func sharesAddress(a, b []net.IP) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Equal(y) {
				return true
			}
		}
	}
	return false
}

// fetchDevice attempts an HTTP GET of "/" against each of c's addresses
// in turn, using the scheme TXT property (defaulting to http). On the
// first success it parses the body as a DeviceData descriptor and
// builds a controller-side Device; on total failure it returns nil.
func fetchDevice(client *http.Client, c candidate) *device.Device {
	scheme := c.props["scheme"]
	if scheme == "" {
		scheme = "http"
	}

	probeTimeout := client.Timeout
	if probeTimeout <= 0 {
		probeTimeout = 500 * time.Millisecond
	}

	for _, addr := range c.addresses {
		if !probe.Reachable(addr, probeTimeout) {
			continue
		}

		host := addr.String()
		if addr.To4() == nil {
			host = "[" + host + "]"
		}
		address := fmt.Sprintf("%s://%s:%d", scheme, host, c.port)
		url := address + "/"

		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			continue
		}
		resp, err := client.Do(req)
		if err != nil {
			continue
		}
		logging.NginxLog(logging.Info, http.MethodGet, url, req, resp)

		var data internaldevice.Data
		decodeErr := json.NewDecoder(resp.Body).Decode(&data)
		resp.Body.Close()
		if decodeErr != nil {
			logging.Log(logging.Warn, "discovery: %s returned a descriptor that failed to parse: %v", address, decodeErr)
			continue
		}

		info := device.NetworkInformation{
			Name:                 c.fullName,
			Addresses:            c.addresses,
			Port:                 uint16(c.port),
			Properties:           c.props,
			LastReachableAddress: address,
		}
		return device.New(info, data, address)
	}
	logging.Log(logging.Warn, "discovery: %s unreachable on every resolved address, skipping", c.fullName)
	return nil
}
