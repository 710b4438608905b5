package impl

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/guolab/copperline/wire"
)

// AddressTable tracks registered hosts and the next-hop table. On a
// single shared cable the next hop is always the destination itself; the
// indirection is kept for future multi-segment topologies.
type AddressTable struct {
	mu     sync.RWMutex
	hosts  map[uint8]*Host
	routes map[uint8]uint8
}

func NewAddressTable() *AddressTable {
	return &AddressTable{
		hosts:  make(map[uint8]*Host),
		routes: make(map[uint8]uint8),
	}
}

// Register adds a host under its address. Addresses are unique for the
// table's lifetime and 255 is reserved for broadcast.
func (t *AddressTable) Register(h *Host) error {
	if h.Address == wire.Broadcast {
		return fmt.Errorf("address %d is reserved for broadcast", wire.Broadcast)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.hosts[h.Address]; ok {
		return fmt.Errorf("host %d already registered", h.Address)
	}
	t.hosts[h.Address] = h
	t.routes[h.Address] = h.Address
	return nil
}

func (t *AddressTable) RequireKnown(addr uint8) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if _, ok := t.hosts[addr]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHost, addr)
	}
	return nil
}

// ResolveTargets maps a destination to the hosts that should see the
// frame: every registered host for broadcast, exactly one next hop
// otherwise.
func (t *AddressTable) ResolveTargets(dst uint8) ([]*Host, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if dst == wire.Broadcast {
		return t.sortedHosts(), nil
	}
	next, ok := t.routes[dst]
	if !ok {
		return nil, fmt.Errorf("%w: destination %d", ErrUnknownHost, dst)
	}
	host, ok := t.hosts[next]
	if !ok {
		return nil, fmt.Errorf("%w: next hop %d", ErrRoutingInconsistency, next)
	}
	return []*Host{host}, nil
}

// Hosts returns the registered hosts in address order.
func (t *AddressTable) Hosts() []*Host {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sortedHosts()
}

func (t *AddressTable) sortedHosts() []*Host {
	hosts := make([]*Host, 0, len(t.hosts))
	for _, addr := range slices.Sorted(maps.Keys(t.hosts)) {
		hosts = append(hosts, t.hosts[addr])
	}
	return hosts
}
