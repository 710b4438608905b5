package core

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/guolab/copperline/mock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "network.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestReadNetworkConfig(t *testing.T) {
	path := writeConfig(t, `channel:
  length: 100
  attenuation: 0.1
  noise_level: 0.01
hosts:
  - name: bob
    address: 1
  - name: jeb
    address: 2
`)
	cfg, err := ReadNetworkConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Channel.Length)
	assert.Len(t, cfg.Hosts, 2)
}

func TestReadNetworkConfigMissingFile(t *testing.T) {
	_, err := ReadNetworkConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestReadNetworkConfigInvalidYaml(t *testing.T) {
	path := writeConfig(t, "channel: [not a mapping")
	_, err := ReadNetworkConfig(path)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestReadNetworkConfigRejectsBroadcastAddress(t *testing.T) {
	path := writeConfig(t, `channel:
  length: 100
  attenuation: 0.1
  noise_level: 0
hosts:
  - name: loud
    address: 255
`)
	_, err := ReadNetworkConfig(path)
	assert.ErrorContains(t, err, "reserved for broadcast")
}

func TestBuildAndRunDemo(t *testing.T) {
	network, err := Build(mock.Network(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer network.Close()

	assert.Len(t, network.Hosts, 3)
	require.NoError(t, RunDemo(network))

	// the demo crossed the cable, so diagnostics saw traffic
	assert.Greater(t, network.Recorder.Len(), 0)
	assert.NotEmpty(t, network.Tracker.Recent())
	assert.NotNil(t, network.Hosts["jeb"].LastReceived())
}

func TestBuildRejectsDuplicateHosts(t *testing.T) {
	cfg := mock.Network()
	cfg.Hosts[1].Address = cfg.Hosts[0].Address
	_, err := Build(cfg, slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}
