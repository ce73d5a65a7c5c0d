package file

import (
	"bytes"
	"fmt"
	"net/netip"
	"os"
	"slices"

	"github.com/ak7sky/cidrsum/internal/core/model"
	"go4.org/netipx"
)

// AddrFileStorage reads newline-delimited IPv4 address lists.
type AddrFileStorage struct{}

func NewAddrFileStorage() *AddrFileStorage {
	return &AddrFileStorage{}
}

// Load returns the addresses listed in path sorted ascending. Duplicates are kept.
func (storage *AddrFileStorage) Load(path string) ([]netip.Addr, error) {
	content, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var addrs []netip.Addr
	err = scanAddrs(content, func(addr netip.Addr) {
		addrs = append(addrs, addr)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slices.SortFunc(addrs, netip.Addr.Compare)
	return addrs, nil
}

// LoadSet returns the addresses listed in path as a set.
func (storage *AddrFileStorage) LoadSet(path string) (*netipx.IPSet, error) {
	content, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var builder netipx.IPSetBuilder
	err = scanAddrs(content, builder.Add)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	set, err := builder.IPSet()
	if err != nil {
		return nil, fmt.Errorf("%w: build set from %s: %v", model.ErrParse, path, err)
	}
	return set, nil
}

func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	return content, nil
}

// scanAddrs parses every non-blank line of content as an IPv4 address.
// The first malformed line aborts the scan.
func scanAddrs(content []byte, fn func(netip.Addr)) error {
	for i, raw := range bytes.Split(content, []byte("\n")) {
		line := string(bytes.TrimSpace(raw))
		if line == "" {
			continue
		}
		addr, err := parseIPv4(line)
		if err != nil {
			return fmt.Errorf("%w: line %d %q: %v", model.ErrParse, i+1, shorten(line), err)
		}
		fn(addr)
	}
	return nil
}

// maxAddrLen is the longest textual form netip accepts, an IPv6 with an embedded IPv4.
const maxAddrLen = len("ffff:ffff:ffff:ffff:ffff:ffff:255.255.255.255")

const maxQuotedLen = 64

func shorten(line string) string {
	if len(line) <= maxQuotedLen {
		return line
	}
	return line[:maxQuotedLen] + "..."
}

func parseIPv4(s string) (netip.Addr, error) {
	if len(s) > maxAddrLen {
		return netip.Addr{}, fmt.Errorf("%d characters is too long for an address", len(s))
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("not an IPv4 address")
	}
	return addr, nil
}
