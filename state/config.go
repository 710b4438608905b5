package state

// ChannelCfg holds the physical parameters of the shared cable. Length
// and attenuation accept any value; degenerate numbers produce degenerate
// attenuation, which is the caller's responsibility.
type ChannelCfg struct {
	Length         float64 `yaml:"length"`
	Attenuation    float64 `yaml:"attenuation"`
	NoiseLevel     float64 `yaml:"noise_level"`
	SignalVelocity float64 `yaml:"signal_velocity,omitempty"` // defaults to DefaultSignalVelocity
	NoiseSeed      uint64  `yaml:"noise_seed,omitempty"`      // 0 seeds from the clock
	HistorySize    int     `yaml:"history_size,omitempty"`    // diagnostic waveform ring size
}

// HostCfg names one endpoint on the cable.
type HostCfg struct {
	Name    string `yaml:"name"`
	Address uint8  `yaml:"address"`
}

// NetworkCfg is the whole simulated network: one cable, its hosts, and
// logging settings.
type NetworkCfg struct {
	Channel ChannelCfg `yaml:"channel"`
	Hosts   []HostCfg  `yaml:"hosts"`
	LogPath string     `yaml:"log_path,omitempty"` // if not empty, logs are also written here
}

// DefaultChannelCfg mirrors the classroom cable: 100 units long, mild
// attenuation, a little noise.
func DefaultChannelCfg() ChannelCfg {
	return ChannelCfg{
		Length:         100,
		Attenuation:    0.1,
		NoiseLevel:     0.05,
		SignalVelocity: DefaultSignalVelocity,
		HistorySize:    DefaultHistorySize,
	}
}
