// Package validation guards user-supplied hosts and input fields.
//
// ValidateShopURL rejects destinations that could be abused for
// server-side request forgery: private IP ranges, localhost, and cloud
// metadata endpoints. Private targets can be permitted for local
// development via the SHOPCTL_ALLOW_PRIVATE environment variable
// (anything strconv.ParseBool accepts) or SetAllowPrivate; metadata
// endpoints stay blocked either way.
package validation

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

var allowPrivate atomic.Bool

func init() {
	v, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv("SHOPCTL_ALLOW_PRIVATE")))
	allowPrivate.Store(v)
}

// SetAllowPrivate permits or forbids private and localhost hosts.
// Metadata endpoints remain blocked regardless.
func SetAllowPrivate(on bool) {
	allowPrivate.Store(on)
}

// AllowPrivateEnabled reports the current private-host policy.
func AllowPrivateEnabled() bool {
	return allowPrivate.Load()
}

// privateRanges covers RFC1918 and the reserved, link-local,
// documentation, and benchmarking blocks for both address families.
var privateRanges = parsePrefixes(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"100.64.0.0/10",
	"169.254.0.0/16",
	"192.0.0.0/24",
	"192.0.2.0/24",
	"198.18.0.0/15",
	"198.51.100.0/24",
	"203.0.113.0/24",
	"240.0.0.0/4",
	"fc00::/7",
	"fe80::/10",
	"ff00::/8",
	"::1/128",
	"::/128",
	"100::/64",
	"2001::/32",
	"2001:10::/28",
	"2001:db8::/32",
)

func parsePrefixes(cidrs ...string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(cidrs))
	for _, c := range cidrs {
		p, err := netip.ParsePrefix(c)
		if err != nil {
			continue
		}
		prefixes = append(prefixes, p)
	}
	return prefixes
}

const resolveTimeout = 5 * time.Second

// metadataAddr is the link-local metadata service shared by AWS,
// Azure, GCP, and DigitalOcean.
var metadataAddr = netip.MustParseAddr("169.254.169.254")

// ValidateShopURL checks a shop host URL before it is stored or
// dialed. The scheme must be http or https, the host must not be
// localhost or a private address unless the private policy allows it,
// and metadata endpoints are rejected unconditionally.
func ValidateShopURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: only http and https are allowed, got %q", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("URL must contain a hostname")
	}
	if !allowPrivate.Load() && isLocalhostName(host) {
		return fmt.Errorf("localhost URLs are not allowed")
	}
	if isMetadataHost(host) {
		return fmt.Errorf("cloud metadata endpoints are not allowed")
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return checkAddr(addr)
	}
	return checkDomain(host)
}

func isLocalhostName(host string) bool {
	h := strings.ToLower(host)
	switch h {
	case "localhost", "127.0.0.1", "::1", "0.0.0.0", "::":
		return true
	}
	return strings.HasSuffix(h, ".localhost")
}

func isMetadataHost(host string) bool {
	h := strings.ToLower(host)
	switch h {
	case "169.254.169.254", "metadata.google.internal", "metadata", "instance-data", "fd00:ec2::254":
		return true
	}
	return strings.HasSuffix(h, ".metadata.google.internal")
}

// checkAddr rejects addresses the private-host policy forbids.
// Link-local space stays blocked even in private mode since the
// metadata service lives there.
func checkAddr(addr netip.Addr) error {
	addr = addr.Unmap()
	switch {
	case addr == metadataAddr:
		return fmt.Errorf("cloud metadata IP address is not allowed")
	case addr.IsUnspecified():
		return fmt.Errorf("unspecified IP addresses are not allowed")
	case addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast():
		return fmt.Errorf("link-local IP addresses are not allowed")
	}
	if allowPrivate.Load() {
		return nil
	}
	if addr.IsLoopback() {
		return fmt.Errorf("loopback IP addresses are not allowed")
	}
	for _, p := range privateRanges {
		if p.Contains(addr) {
			return fmt.Errorf("private IP addresses are not allowed")
		}
	}
	return nil
}

// checkDomain resolves a hostname and applies checkAddr to every
// address. Resolution failure passes: a shop that is not live yet can
// still be validated and stored.
func checkDomain(host string) error {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		if err := checkAddr(addr); err != nil {
			return fmt.Errorf("domain %q resolves to forbidden IP %s: %w", host, addr, err)
		}
	}
	return nil
}
