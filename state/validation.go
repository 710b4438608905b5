package state

import (
	"fmt"
	"regexp"

	"github.com/guolab/copperline/wire"
)

var namePattern = regexp.MustCompile("^[0-9a-z._-]+$")

func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%s is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(\"%s\") = %d > 100 is too long", s, len(s))
	}
	return nil
}

func ChannelConfigValidator(cfg *ChannelCfg) error {
	if cfg.NoiseLevel < 0 {
		return fmt.Errorf("channel noise_level %v must not be negative", cfg.NoiseLevel)
	}
	if cfg.SignalVelocity < 0 {
		return fmt.Errorf("channel signal_velocity %v must be positive", cfg.SignalVelocity)
	}
	if cfg.HistorySize < 0 {
		return fmt.Errorf("channel history_size %d must not be negative", cfg.HistorySize)
	}
	return nil
}

func NetworkConfigValidator(cfg *NetworkCfg) error {
	if err := ChannelConfigValidator(&cfg.Channel); err != nil {
		return err
	}
	names := make(map[string]bool)
	addrs := make(map[uint8]bool)
	for _, host := range cfg.Hosts {
		if err := NameValidator(host.Name); err != nil {
			return err
		}
		if host.Address == wire.Broadcast {
			return fmt.Errorf("host %s: address %d is reserved for broadcast", host.Name, wire.Broadcast)
		}
		if names[host.Name] {
			return fmt.Errorf("duplicate host name %s", host.Name)
		}
		if addrs[host.Address] {
			return fmt.Errorf("duplicate host address %d", host.Address)
		}
		names[host.Name] = true
		addrs[host.Address] = true
	}
	return nil
}
