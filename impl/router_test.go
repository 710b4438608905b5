package impl

import (
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/guolab/copperline/channel"
	"github.com/guolab/copperline/diag"
	"github.com/guolab/copperline/state"
	"github.com/guolab/copperline/wire"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietChannelCfg() state.ChannelCfg {
	return state.ChannelCfg{Length: 100, Attenuation: 0.1, NoiseLevel: 0.01, NoiseSeed: 1}
}

func newTestRouter(t *testing.T, cfg state.ChannelCfg) (*Router, *diag.Recorder) {
	t.Helper()
	recorder := diag.NewRecorder(state.DefaultHistorySize)
	cable := channel.New(cfg, recorder)
	return NewRouter(NewMedium(cable, nil), slog.New(slog.DiscardHandler)), recorder
}

func registerThree(t *testing.T, r *Router) (a, b, c *Host) {
	t.Helper()
	a, err := r.RegisterHost("bob", 1)
	require.NoError(t, err)
	b, err = r.RegisterHost("jeb", 2)
	require.NoError(t, err)
	c, err = r.RegisterHost("kat", 3)
	require.NoError(t, err)
	return a, b, c
}

func TestUnicastDelivery(t *testing.T) {
	r, _ := newTestRouter(t, quietChannelCfg())
	a, b, c := registerThree(t, r)

	require.NoError(t, a.Send(c.Address, "Ping from A"))

	got := c.LastReceived()
	require.NotNil(t, got)
	assert.Equal(t, "Ping from A", got.Payload)
	assert.Equal(t, a.Address, got.Src)
	assert.Equal(t, c.Address, got.Dst)
	assert.Nil(t, b.LastReceived(), "bystander host must stay untouched")
}

func TestBroadcastFanOut(t *testing.T) {
	r, _ := newTestRouter(t, quietChannelCfg())
	a, b, c := registerThree(t, r)

	require.NoError(t, a.Send(wire.Broadcast, "hear ye"))

	for _, h := range []*Host{a, b, c} {
		got := h.LastReceived()
		require.NotNil(t, got, "host %s missed the broadcast", h.Name)
		assert.Equal(t, "hear ye", got.Payload)
		assert.Equal(t, a.Address, got.Src)
		assert.Equal(t, wire.Broadcast, got.Dst)
	}
}

func TestUnknownDestination(t *testing.T) {
	r, recorder := newTestRouter(t, quietChannelCfg())
	a, _, _ := registerThree(t, r)

	err := a.Send(99, "into the void")
	assert.ErrorIs(t, err, ErrUnknownHost)
	assert.Zero(t, recorder.Len(), "nothing may touch the cable for an unknown destination")
}

func TestUnknownSource(t *testing.T) {
	r, _ := newTestRouter(t, quietChannelCfg())
	registerThree(t, r)

	err := r.Send(77, 1, "forged")
	assert.ErrorIs(t, err, ErrUnknownHost)
}

func TestRegisterDuplicateAddress(t *testing.T) {
	r, _ := newTestRouter(t, quietChannelCfg())
	_, err := r.RegisterHost("bob", 1)
	require.NoError(t, err)
	_, err = r.RegisterHost("imposter", 1)
	assert.Error(t, err)
}

func TestRegisterBroadcastAddress(t *testing.T) {
	r, _ := newTestRouter(t, quietChannelCfg())
	_, err := r.RegisterHost("loud", wire.Broadcast)
	assert.Error(t, err)
}

func TestRoutingInconsistency(t *testing.T) {
	r, _ := newTestRouter(t, quietChannelCfg())
	a, _, _ := registerThree(t, r)

	// model a stale table: host 3 routes to an address nobody holds
	r.addresses.mu.Lock()
	r.addresses.routes[3] = 77
	r.addresses.mu.Unlock()

	err := a.Send(3, "lost")
	assert.ErrorIs(t, err, ErrRoutingInconsistency)
}

func TestConcurrentSendsAllDelivered(t *testing.T) {
	r, _ := newTestRouter(t, quietChannelCfg())
	a, b, c := registerThree(t, r)
	d, err := r.RegisterHost("eve", 4)
	require.NoError(t, err)

	for round := 0; round < 5; round++ {
		var wg sync.WaitGroup
		errs := make([]error, 2)
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			errs[0] = a.Send(c.Address, "parallel from bob")
		}()
		go func() {
			defer wg.Done()
			<-start
			errs[1] = b.Send(d.Address, "parallel from jeb")
		}()
		close(start)
		wg.Wait()

		require.NoError(t, errors.Join(errs...))
		require.NotNil(t, c.LastReceived())
		assert.Equal(t, "parallel from bob", c.LastReceived().Payload)
		assert.Equal(t, a.Address, c.LastReceived().Src)
		require.NotNil(t, d.LastReceived())
		assert.Equal(t, "parallel from jeb", d.LastReceived().Payload)
		assert.Equal(t, b.Address, d.LastReceived().Src)
	}
}

func TestCollisionDetection(t *testing.T) {
	cfg := quietChannelCfg()
	cfg.NoiseLevel = 0
	r, _ := newTestRouter(t, cfg)

	frameA, err := wire.BuildFrame(10, 20, "hello")
	require.NoError(t, err)
	frameB, err := wire.BuildFrame(20, 10, "world")
	require.NoError(t, err)

	err = r.SendSimultaneously([]wire.Frame{frameA, frameB})
	assert.ErrorIs(t, err, ErrCollision)
}

func TestCollisionWithDifferentLengths(t *testing.T) {
	cfg := quietChannelCfg()
	cfg.NoiseLevel = 0
	r, _ := newTestRouter(t, cfg)

	frameA, err := wire.BuildFrame(1, 2, "short")
	require.NoError(t, err)
	frameB, err := wire.BuildFrame(2, 1, "a much longer transmission")
	require.NoError(t, err)

	err = r.SendSimultaneously([]wire.Frame{frameA, frameB})
	assert.ErrorIs(t, err, ErrCollision)
}

func TestIdenticalFramesSuperimposeCleanly(t *testing.T) {
	cfg := quietChannelCfg()
	cfg.NoiseLevel = 0
	r, _ := newTestRouter(t, cfg)

	frame, err := wire.BuildFrame(1, 2, "twin")
	require.NoError(t, err)

	// two copies of the same waveform sum to the same bit pattern; that
	// is indistinguishable from a single louder transmission
	assert.NoError(t, r.SendSimultaneously([]wire.Frame{frame, frame}))
}

func TestSendSimultaneouslyNeedsTwoFrames(t *testing.T) {
	r, _ := newTestRouter(t, quietChannelCfg())
	frame, err := wire.BuildFrame(1, 2, "solo")
	require.NoError(t, err)

	err = r.SendSimultaneously([]wire.Frame{frame})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCollision)
}

func TestHostIgnoresForeignFrame(t *testing.T) {
	r, _ := newTestRouter(t, quietChannelCfg())
	a, _, _ := registerThree(t, r)

	frame, err := wire.BuildFrame(2, 3, "not for bob")
	require.NoError(t, err)

	msg, err := a.Receive(frame)
	assert.NoError(t, err)
	assert.Nil(t, msg)
	assert.Nil(t, a.LastReceived())
}

func TestLastReceivedIsSingleSlot(t *testing.T) {
	r, _ := newTestRouter(t, quietChannelCfg())
	a, b, _ := registerThree(t, r)

	require.NoError(t, a.Send(b.Address, "first"))
	require.NoError(t, a.Send(b.Address, "second"))
	require.NotNil(t, b.LastReceived())
	assert.Equal(t, "second", b.LastReceived().Payload)
}
