package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/guolab/copperline/impl"
	"github.com/guolab/copperline/wire"
)

// RunDemo exercises the network the way the classroom demos do: unicast
// between the first two hosts, a broadcast, then two concurrent sends
// that the channel lock serializes.
func RunDemo(n *Network) error {
	hosts := n.Router.Addresses().Hosts()
	if len(hosts) < 2 {
		return errors.New("demo needs at least two hosts")
	}
	a, b := hosts[0], hosts[1]
	log := n.Log

	log.Info("unicast", "from", a.Name, "to", b.Name)
	hopDelaySleep(n)
	if err := a.Send(b.Address, fmt.Sprintf("hello %s, this is %s", b.Name, a.Name)); err != nil {
		return err
	}
	logDelivery(n, b)

	log.Info("broadcast", "from", b.Name)
	if err := b.Send(wire.Broadcast, "broadcast from "+b.Name); err != nil {
		return err
	}
	for _, h := range hosts {
		logDelivery(n, h)
	}

	// two hosts contending for the cable at once; the per-hop lock
	// serializes them and both messages arrive intact
	log.Info("concurrent sends", "hosts", []string{a.Name, b.Name})
	var wg sync.WaitGroup
	errs := make([]error, 2)
	start := make(chan struct{})
	wg.Add(2)
	go func() {
		defer wg.Done()
		<-start
		errs[0] = a.Send(b.Address, "parallel from "+a.Name)
	}()
	go func() {
		defer wg.Done()
		<-start
		errs[1] = b.Send(a.Address, "parallel from "+b.Name)
	}()
	close(start)
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return err
	}
	logDelivery(n, a)
	logDelivery(n, b)

	if wf, ok := n.Recorder.Last(); ok {
		stats := wf.Stats()
		log.Info("last hop waveform",
			"samples", len(wf.Output),
			"output_mean", stats.OutputMean,
			"snr_db", stats.SNRdB)
	}
	log.Info("hops on the cable", "count", len(n.Tracker.Recent()))
	return nil
}

func logDelivery(n *Network, h *impl.Host) {
	if msg := h.LastReceived(); msg != nil {
		n.Log.Info("received", "host", h.Name, "src", msg.Src, "payload", msg.Payload)
	}
}
