package subnet

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/subnetear/subnetear/internal/ipv4"
)

// Split is the result of dividing a base network: the derived child prefix
// length, the number of bits used to reach it (borrowed bits for ByCount and
// ByPrefix, host bits for ByHosts) and the children in address order.
type Split struct {
	NewPrefix int
	Bits      int
	Networks  []ipv4.Network
}

// ceilLog2 returns ceil(log2(n)) for n >= 1 without floating point.
func ceilLog2(n int) int {
	return bits.Len(uint(n - 1))
}

// children enumerates the address-ascending partition of base at newPrefix.
// Caller guarantees base.Prefix() <= newPrefix <= 32.
func children(base ipv4.Network, newPrefix int) []ipv4.Network {
	var (
		count = uint64(1) << uint(newPrefix-base.Prefix())
		step  = uint64(1) << uint(32-newPrefix)
		addr  = uint64(base.Addr())
	)
	nets := make([]ipv4.Network, 0, count)
	for i := uint64(0); i < count; i++ {
		n, _ := ipv4.New(ipv4.Addr(addr), newPrefix)
		nets = append(nets, n)
		addr += step
	}
	return nets
}

// ByCount splits base into at least n subnets by borrowing ceil(log2(n))
// bits. When n is not a power of two every generated child is returned, so
// the result may hold more than n networks. n == 1 is a no-op returning the
// base network itself.
func ByCount(base ipv4.Network, n int) (Split, error) {
	if n < 1 {
		return Split{}, errors.Wrapf(ErrInvalidParameter, "subnet count %d, must be >= 1", n)
	}
	borrowed := ceilLog2(n)
	newPrefix := base.Prefix() + borrowed
	if newPrefix > 32 {
		return Split{}, errors.Wrapf(ErrPrefixOverflow, "%d subnets need /%d in %s", n, newPrefix, base)
	}
	return Split{
		NewPrefix: newPrefix,
		Bits:      borrowed,
		Networks:  children(base, newPrefix),
	}, nil
}

// ByPrefix splits base into subnets of the given target prefix length.
func ByPrefix(base ipv4.Network, newPrefix int) (Split, error) {
	if newPrefix < 0 || newPrefix > 32 {
		return Split{}, errors.Wrapf(ErrInvalidParameter, "target prefix /%d", newPrefix)
	}
	if newPrefix < base.Prefix() {
		return Split{}, errors.Wrapf(ErrPrefixUnderflow, "target /%d is a larger block than base %s", newPrefix, base)
	}
	return Split{
		NewPrefix: newPrefix,
		Bits:      newPrefix - base.Prefix(),
		Networks:  children(base, newPrefix),
	}, nil
}

// ByHosts splits base into subnets that each fit at least hosts usable
// hosts under the classic rule: host bits = ceil(log2(hosts + 2)), the +2
// reserving network and broadcast addresses. The reservation is applied
// uniformly even though /31 and /32 descriptors treat those addresses as
// usable; that asymmetry is intentional and matches subnetting practice.
func ByHosts(base ipv4.Network, hosts int) (Split, error) {
	if hosts < 1 {
		return Split{}, errors.Wrapf(ErrInvalidParameter, "host count %d, must be >= 1", hosts)
	}
	hostBits := ceilLog2(hosts + 2)
	newPrefix := 32 - hostBits
	if newPrefix < base.Prefix() {
		return Split{}, errors.Wrapf(ErrPrefixUnderflow, "%d hosts need /%d, base is %s", hosts, newPrefix, base)
	}
	return Split{
		NewPrefix: newPrefix,
		Bits:      hostBits,
		Networks:  children(base, newPrefix),
	}, nil
}

// Locate returns the one child of base at targetPrefix that contains addr.
// Children partition the base address space, so the result is the same as
// enumerating them in address order and taking the first match. Fails with
// ErrNotInNetwork when addr lies outside base entirely.
func Locate(base ipv4.Network, targetPrefix int, addr ipv4.Addr) (ipv4.Network, error) {
	if targetPrefix < 0 || targetPrefix > 32 {
		return ipv4.Network{}, errors.Wrapf(ErrInvalidParameter, "target prefix /%d", targetPrefix)
	}
	if targetPrefix < base.Prefix() {
		return ipv4.Network{}, errors.Wrapf(ErrPrefixUnderflow, "target /%d is a larger block than base %s", targetPrefix, base)
	}
	if !base.Contains(addr) {
		return ipv4.Network{}, errors.Wrapf(ErrNotInNetwork, "%s is outside %s", addr, base)
	}
	return ipv4.New(addr, targetPrefix)
}
