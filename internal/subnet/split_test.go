package subnet

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/subnetear/subnetear/internal/ipv4"
)

func TestByCount(t *testing.T) {
	t.Run("FourOf24", func(t *testing.T) {
		s, err := ByCount(mustCIDR(t, "10.0.0.0/24"), 4)
		if err != nil {
			t.Fatal(err)
		}
		if s.Bits != 2 || s.NewPrefix != 26 {
			t.Errorf("got %d bits, /%d", s.Bits, s.NewPrefix)
		}
		want := []string{"10.0.0.0/26", "10.0.0.64/26", "10.0.0.128/26", "10.0.0.192/26"}
		if len(s.Networks) != len(want) {
			t.Fatalf("got %d children", len(s.Networks))
		}
		for i, n := range s.Networks {
			if n.String() != want[i] {
				t.Errorf("child %d: got %s, want %s", i, n, want[i])
			}
		}
	})
	t.Run("NoOp", func(t *testing.T) {
		base := mustCIDR(t, "192.168.0.0/16")
		s, err := ByCount(base, 1)
		if err != nil {
			t.Fatal(err)
		}
		if s.Bits != 0 || s.NewPrefix != 16 {
			t.Errorf("got %d bits, /%d", s.Bits, s.NewPrefix)
		}
		if len(s.Networks) != 1 || s.Networks[0] != base {
			t.Error("should return the base network itself")
		}
	})
	t.Run("RoundsUp", func(t *testing.T) {
		// 5 requested, 3 borrowed bits, all 8 children returned.
		s, err := ByCount(mustCIDR(t, "10.0.0.0/24"), 5)
		if err != nil {
			t.Fatal(err)
		}
		if s.Bits != 3 || len(s.Networks) != 8 {
			t.Errorf("got %d bits, %d children", s.Bits, len(s.Networks))
		}
	})
	t.Run("Overflow", func(t *testing.T) {
		_, err := ByCount(mustCIDR(t, "10.0.0.0/30"), 8)
		if errors.Cause(err) != ErrPrefixOverflow {
			t.Errorf("got %v", err)
		}
	})
	t.Run("InvalidCount", func(t *testing.T) {
		for _, n := range []int{0, -3} {
			if _, err := ByCount(mustCIDR(t, "10.0.0.0/24"), n); errors.Cause(err) != ErrInvalidParameter {
				t.Errorf("n=%d: got %v", n, err)
			}
		}
	})
}

func TestByPrefix(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		s, err := ByPrefix(mustCIDR(t, "192.168.1.0/24"), 27)
		if err != nil {
			t.Fatal(err)
		}
		if s.NewPrefix != 27 || s.Bits != 3 || len(s.Networks) != 8 {
			t.Errorf("got /%d, %d bits, %d children", s.NewPrefix, s.Bits, len(s.Networks))
		}
	})
	t.Run("Same", func(t *testing.T) {
		base := mustCIDR(t, "192.168.1.0/24")
		s, err := ByPrefix(base, 24)
		if err != nil {
			t.Fatal(err)
		}
		if len(s.Networks) != 1 || s.Networks[0] != base {
			t.Error("should return the base network itself")
		}
	})
	t.Run("Underflow", func(t *testing.T) {
		_, err := ByPrefix(mustCIDR(t, "192.168.1.0/24"), 16)
		if errors.Cause(err) != ErrPrefixUnderflow {
			t.Errorf("got %v", err)
		}
	})
	t.Run("OutOfRange", func(t *testing.T) {
		for _, p := range []int{-1, 33} {
			if _, err := ByPrefix(mustCIDR(t, "192.168.1.0/24"), p); errors.Cause(err) != ErrInvalidParameter {
				t.Errorf("p=%d: got %v", p, err)
			}
		}
	})
}

func TestByHosts(t *testing.T) {
	t.Run("Thirty", func(t *testing.T) {
		// 30 hosts + 2 reserved = 32 addresses, 5 host bits, /27.
		s, err := ByHosts(mustCIDR(t, "172.16.0.0/20"), 30)
		if err != nil {
			t.Fatal(err)
		}
		if s.Bits != 5 || s.NewPrefix != 27 {
			t.Errorf("got %d host bits, /%d", s.Bits, s.NewPrefix)
		}
		if len(s.Networks) != 128 {
			t.Errorf("got %d children", len(s.Networks))
		}
	})
	t.Run("One", func(t *testing.T) {
		// 1 host still reserves network and broadcast: 2 host bits, /30.
		s, err := ByHosts(mustCIDR(t, "10.0.0.0/24"), 1)
		if err != nil {
			t.Fatal(err)
		}
		if s.Bits != 2 || s.NewPrefix != 30 {
			t.Errorf("got %d host bits, /%d", s.Bits, s.NewPrefix)
		}
	})
	t.Run("Underflow", func(t *testing.T) {
		_, err := ByHosts(mustCIDR(t, "192.168.1.0/24"), 500)
		if errors.Cause(err) != ErrPrefixUnderflow {
			t.Errorf("got %v", err)
		}
	})
	t.Run("InvalidHosts", func(t *testing.T) {
		if _, err := ByHosts(mustCIDR(t, "10.0.0.0/8"), 0); errors.Cause(err) != ErrInvalidParameter {
			t.Errorf("got %v", err)
		}
	})
}

func TestSplitPartition(t *testing.T) {
	// Children must be contiguous, non-overlapping and sum to the base block.
	base := mustCIDR(t, "172.16.32.0/19")
	s, err := ByCount(base, 6)
	if err != nil {
		t.Fatal(err)
	}
	var total uint64
	next := uint64(base.Addr())
	for i, n := range s.Networks {
		if uint64(n.Addr()) != next {
			t.Fatalf("child %d not contiguous: got %s", i, n)
		}
		total += n.NumAddresses()
		next += n.NumAddresses()
	}
	if total != base.NumAddresses() {
		t.Errorf("children cover %d addresses, base has %d", total, base.NumAddresses())
	}
}

func TestLocate(t *testing.T) {
	base := mustCIDR(t, "192.168.1.0/24")
	t.Run("Hit", func(t *testing.T) {
		addr, err := ipv4.ParseAddr("192.168.1.130")
		if err != nil {
			t.Fatal(err)
		}
		n, err := Locate(base, 27, addr)
		if err != nil {
			t.Fatal(err)
		}
		if n.String() != "192.168.1.128/27" {
			t.Errorf("got %s", n)
		}
	})
	t.Run("MatchesEnumeration", func(t *testing.T) {
		addr, err := ipv4.ParseAddr("192.168.1.77")
		if err != nil {
			t.Fatal(err)
		}
		got, err := Locate(base, 28, addr)
		if err != nil {
			t.Fatal(err)
		}
		s, err := ByPrefix(base, 28)
		if err != nil {
			t.Fatal(err)
		}
		found := false
		for _, n := range s.Networks {
			if n.Contains(addr) {
				if n != got {
					t.Errorf("enumeration found %s, Locate %s", n, got)
				}
				found = true
				break
			}
		}
		if !found {
			t.Error("no child contains the address")
		}
	})
	t.Run("Outside", func(t *testing.T) {
		addr, err := ipv4.ParseAddr("192.168.2.1")
		if err != nil {
			t.Fatal(err)
		}
		if _, err = Locate(base, 27, addr); errors.Cause(err) != ErrNotInNetwork {
			t.Errorf("got %v", err)
		}
	})
	t.Run("Underflow", func(t *testing.T) {
		addr, _ := ipv4.ParseAddr("192.168.1.1")
		if _, err := Locate(base, 16, addr); errors.Cause(err) != ErrPrefixUnderflow {
			t.Errorf("got %v", err)
		}
	})
}
