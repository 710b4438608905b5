package mock

import "github.com/guolab/copperline/state"

// Network returns a small three-host network on a quiet cable, enough
// for the demos and tests.
func Network() state.NetworkCfg {
	return state.NetworkCfg{
		Channel: state.ChannelCfg{
			Length:      100,
			Attenuation: 0.1,
			NoiseLevel:  0.01,
			HistorySize: state.DefaultHistorySize,
		},
		Hosts: []state.HostCfg{
			{Name: "bob", Address: 1},
			{Name: "jeb", Address: 2},
			{Name: "kat", Address: 3},
		},
	}
}

// QuietNetwork is Network without noise, for tests that need exact
// round trips.
func QuietNetwork() state.NetworkCfg {
	cfg := Network()
	cfg.Channel.NoiseLevel = 0
	return cfg
}
