package core

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/encodeous/tint"
	"github.com/goccy/go-yaml"
	slogmulti "github.com/samber/slog-multi"

	"github.com/guolab/copperline/channel"
	"github.com/guolab/copperline/diag"
	"github.com/guolab/copperline/impl"
	"github.com/guolab/copperline/state"
)

// Network is a fully wired simulation: the cable, its router and the
// hosts from the config, plus the diagnostics the transport exposes.
type Network struct {
	Router   *impl.Router
	Hosts    map[string]*impl.Host
	Recorder *diag.Recorder
	Tracker  *diag.Tracker
	Log      *slog.Logger
}

// ReadNetworkConfig loads and validates a network config file.
func ReadNetworkConfig(configPath string) (*state.NetworkCfg, error) {
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg state.NetworkCfg
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	if err := state.NetworkConfigValidator(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewLogger builds the simulation logger: tint on stderr, fanned out to
// a text log file when logPath is set.
func NewLogger(level slog.Level, logPath, prefix string) (*slog.Logger, error) {
	handlers := []slog.Handler{
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:        level,
			AddSource:    false,
			TimeFormat:   "15:04:05",
			CustomPrefix: prefix,
		}),
	}
	if logPath != "" {
		if err := os.MkdirAll(path.Dir(logPath), 0700); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0700)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slogmulti.Fanout(handlers...)), nil
}

// Build wires a network from its config: recorder, tracker, cable,
// router, hosts. The caller owns the result and must Close it.
func Build(cfg state.NetworkCfg, log *slog.Logger) (*Network, error) {
	recorder := diag.NewRecorder(cfg.Channel.HistorySize)
	tracker := diag.NewTracker(state.HopRetention)
	cable := channel.New(cfg.Channel, recorder)
	router := impl.NewRouter(impl.NewMedium(cable, tracker), log)

	hosts := make(map[string]*impl.Host, len(cfg.Hosts))
	for _, hc := range cfg.Hosts {
		host, err := router.RegisterHost(hc.Name, hc.Address)
		if err != nil {
			tracker.Stop()
			return nil, err
		}
		hosts[hc.Name] = host
	}

	log.Info("network up",
		"cable", cable.String(),
		"hosts", len(hosts),
		"hop_delay", cable.PropagationDelay())
	return &Network{
		Router:   router,
		Hosts:    hosts,
		Recorder: recorder,
		Tracker:  tracker,
		Log:      log,
	}, nil
}

func (n *Network) Close() {
	n.Tracker.Stop()
}

// hopDelaySleep simulates wall-clock propagation for demos. Optional and
// always outside the channel lock.
func hopDelaySleep(n *Network) {
	time.Sleep(n.Router.Medium().Delay())
}
