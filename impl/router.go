package impl

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/guolab/copperline/wire"
)

// Router coordinates every transmission on the shared cable. A send is
// one stateless transaction: validate the addresses, carry the uplink
// hop, recover and resolve, then repeat the hop per target on the
// downlink. Failures propagate synchronously; there are no retries.
type Router struct {
	medium    *Medium
	addresses *AddressTable
	log       *slog.Logger
}

// NewRouter wires a router to an explicit medium. There is no implicit
// default channel.
func NewRouter(medium *Medium, log *slog.Logger) *Router {
	return &Router{
		medium:    medium,
		addresses: NewAddressTable(),
		log:       log,
	}
}

// RegisterHost creates a host on addr and adds it to the address table.
func (r *Router) RegisterHost(name string, addr uint8) (*Host, error) {
	host := &Host{Name: name, Address: addr, router: r}
	if err := r.addresses.Register(host); err != nil {
		return nil, err
	}
	r.log.Debug("registered host", "name", name, "addr", addr)
	return host, nil
}

func (r *Router) Addresses() *AddressTable { return r.addresses }
func (r *Router) Medium() *Medium          { return r.medium }

// Send runs one complete transaction from src to dst. Both hops cross
// the same cable and carry the same noise and parity risk.
func (r *Router) Send(src, dst uint8, message string) error {
	if err := r.addresses.RequireKnown(src); err != nil {
		return err
	}
	if dst != wire.Broadcast {
		if err := r.addresses.RequireKnown(dst); err != nil {
			return err
		}
	}

	uplink, err := wire.BuildFrame(src, dst, message)
	if err != nil {
		return err
	}
	ingress, err := r.medium.TransmitFrame(uplink)
	if err != nil {
		return fmt.Errorf("uplink: %w", err)
	}

	payload, err := ingress.Text()
	if err != nil {
		return fmt.Errorf("uplink: %w", err)
	}
	targets, err := r.addresses.ResolveTargets(ingress.Dst)
	if err != nil {
		return err
	}

	for _, host := range targets {
		outDst := host.Address
		if dst == wire.Broadcast {
			outDst = wire.Broadcast
		}
		outbound, err := wire.BuildFrame(ingress.Src, outDst, payload)
		if err != nil {
			return err
		}
		delivered, err := r.medium.TransmitFrame(outbound)
		if err != nil {
			return fmt.Errorf("downlink to %d: %w", host.Address, err)
		}
		msg, err := host.Receive(delivered)
		if err != nil {
			return fmt.Errorf("downlink to %d: %w", host.Address, err)
		}
		if msg != nil {
			r.log.Debug("delivered", "host", host.Name, "src", msg.Src, "dst", msg.Dst)
		}
	}
	return nil
}

// SendSimultaneously pushes several frames onto the cable in the same
// instant, bypassing the per-hop serialization. The summed waveform is
// expected to corrupt: a composite that fails to parse, fails parity, or
// decodes to a payload matching none of the senders is reported as a
// collision. Detection only — colliding senders must retry themselves,
// the medium performs no arbitration.
func (r *Router) SendSimultaneously(frames []wire.Frame) error {
	if len(frames) < 2 {
		return errors.New("simultaneous send needs at least two frames")
	}
	bits := r.medium.TransmitComposite(frames)
	composite, err := wire.ParseFrame(bits)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCollision, err)
	}
	payload, err := composite.Text()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCollision, err)
	}
	for _, f := range frames {
		original, err := f.Text()
		if err == nil && original == payload && f.Src == composite.Src && f.Dst == composite.Dst {
			// identical signals superimpose cleanly and are indistinguishable
			// from a single transmission
			return nil
		}
	}
	return fmt.Errorf("%w: composite payload matches no sender", ErrCollision)
}
