// Package ipv4 implements IPv4 address and network value types.
//
// Addresses are carried as plain 32-bit integers so that all subnet
// arithmetic stays explicit; conversion to and from dotted-decimal text
// happens only at the boundaries.
package ipv4

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Addr is an IPv4 address as a 32-bit integer, most significant octet first.
type Addr uint32

// Octets returns the four octets of a, highest first.
func (a Addr) Octets() [4]byte {
	return [4]byte{
		byte(a >> 24),
		byte(a >> 16),
		byte(a >> 8),
		byte(a),
	}
}

func (a Addr) String() string {
	o := a.Octets()
	return fmt.Sprintf("%d.%d.%d.%d", o[0], o[1], o[2], o[3])
}

// ParseAddr parses dotted-decimal IPv4 notation.
func ParseAddr(s string) (Addr, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, errors.Errorf("invalid IPv4 address %q", s)
	}
	var a Addr
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > 255 {
			return 0, errors.Errorf("invalid IPv4 address %q", s)
		}
		a = a<<8 | Addr(v)
	}
	return a, nil
}

// MaskFromPrefix returns the subnet mask for prefix.
//
// Total function for prefix in [0, 32].
func MaskFromPrefix(prefix int) Addr {
	return Addr(^uint32(0) << uint(32-prefix))
}

// Wildcard returns the inverse (wildcard) mask, 255 - octet in every octet.
func Wildcard(mask Addr) Addr { return ^mask }

// Network is an immutable IPv4 network, a base address plus prefix length.
// The address is always normalized to the network's base address.
type Network struct {
	addr   Addr
	prefix int
}

// New initializes a Network from any address inside it, zeroing host bits.
func New(addr Addr, prefix int) (Network, error) {
	if prefix < 0 || prefix > 32 {
		return Network{}, errors.Errorf("invalid prefix length /%d", prefix)
	}
	return Network{addr: addr & MaskFromPrefix(prefix), prefix: prefix}, nil
}

// ParseCIDR parses "a.b.c.d/n" notation, accepting host addresses and
// normalizing them to the network base, like "192.168.1.10/27".
func ParseCIDR(s string) (Network, error) {
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return Network{}, errors.Errorf("invalid CIDR %q: no prefix", s)
	}
	addr, err := ParseAddr(s[:i])
	if err != nil {
		return Network{}, errors.Wrapf(err, "invalid CIDR %q", s)
	}
	prefix, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return Network{}, errors.Errorf("invalid CIDR %q: bad prefix", s)
	}
	return New(addr, prefix)
}

// Addr returns the network base address.
func (n Network) Addr() Addr { return n.addr }

// Prefix returns the prefix length.
func (n Network) Prefix() int { return n.prefix }

// Mask returns the subnet mask of n.
func (n Network) Mask() Addr { return MaskFromPrefix(n.prefix) }

// Broadcast returns the highest address of n. For /32 it equals the
// network address itself.
func (n Network) Broadcast() Addr {
	return n.addr | Wildcard(MaskFromPrefix(n.prefix))
}

// NumAddresses returns the total address count, 2^(32-prefix).
func (n Network) NumAddresses() uint64 {
	return uint64(1) << uint(32-n.prefix)
}

// Contains reports whether a falls inside n.
func (n Network) Contains(a Addr) bool {
	return a&MaskFromPrefix(n.prefix) == n.addr
}

func (n Network) String() string {
	return fmt.Sprintf("%s/%d", n.addr, n.prefix)
}
