package subnet

import "github.com/pkg/errors"

// Engine error values. Callers can match on them via errors.Cause.
var (
	// ErrPrefixOverflow means a split would require a prefix longer than /32.
	ErrPrefixOverflow = errors.New("new prefix exceeds /32")
	// ErrPrefixUnderflow means the requested prefix is coarser than the base
	// network, which is a supernet, not a subdivision.
	ErrPrefixUnderflow = errors.New("new prefix is coarser than base prefix")
	// ErrInvalidParameter means a non-positive count or host requirement.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNotInNetwork means the address is outside the base network.
	ErrNotInNetwork = errors.New("address is not in base network")
)
