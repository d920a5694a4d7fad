// Package subnet implements the IPv4 subnet calculus: per-network
// descriptors, splitting of a base network into subnets and membership
// lookup. All functions are pure and safe for concurrent use.
package subnet

import "github.com/subnetear/subnetear/internal/ipv4"

// Descriptor holds every display field derived from one network. It is a
// pure function of its source network and carries no identity of its own.
type Descriptor struct {
	Subnet           string
	Netmask          string
	Wildcard         string
	Network          string
	Broadcast        string
	FirstHost        string
	LastHost         string
	UsableHosts      uint64
	MagicNumber      int
	InterestingOctet int
	MaskOctetValue   int
}

// Magic returns the magic number for prefix, the 1-based interesting octet
// where the mask goes partial, and the mask value in that octet.
//
// At an exact octet boundary the magic number is formally 1 and the mask
// octet is 255; consecutive subnet boundaries within the interesting octet
// are multiples of the magic number otherwise.
func Magic(prefix int) (magic, octet, maskOctet int) {
	if prefix%8 == 0 {
		return 1, prefix / 8, 255
	}
	idx := prefix / 8
	maskOctet = int(ipv4.MaskFromPrefix(prefix).Octets()[idx])
	return 256 - maskOctet, idx + 1, maskOctet
}

// Describe derives the full descriptor for one network.
//
// Host range rules by prefix length:
//
//	/0../30  classic: usable = total - 2, first = network+1, last = broadcast-1
//	/31      RFC 3021 point-to-point: both addresses usable
//	/32      host route: the single address is the range
func Describe(n ipv4.Network) Descriptor {
	var (
		mask      = n.Mask()
		network   = n.Addr()
		broadcast = n.Broadcast()

		usable      uint64
		first, last ipv4.Addr
	)
	switch {
	case n.Prefix() <= 30:
		usable = n.NumAddresses() - 2
		first = network + 1
		last = broadcast - 1
	case n.Prefix() == 31:
		usable = 2
		first = network
		last = broadcast
	default: // /32
		usable = 1
		first = network
		last = network
	}

	magic, octet, maskOctet := Magic(n.Prefix())

	return Descriptor{
		Subnet:           n.String(),
		Netmask:          mask.String(),
		Wildcard:         ipv4.Wildcard(mask).String(),
		Network:          network.String(),
		Broadcast:        broadcast.String(),
		FirstHost:        first.String(),
		LastHost:         last.String(),
		UsableHosts:      usable,
		MagicNumber:      magic,
		InterestingOctet: octet,
		MaskOctetValue:   maskOctet,
	}
}

// DescribeAll maps Describe over networks, preserving order.
func DescribeAll(networks []ipv4.Network) []Descriptor {
	infos := make([]Descriptor, 0, len(networks))
	for _, n := range networks {
		infos = append(infos, Describe(n))
	}
	return infos
}
