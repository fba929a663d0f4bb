// Package platform holds per-platform encoding targets for the optimize
// command.
package platform

import (
	"fmt"
	"sort"
)

// Platform describes the re-encode target for a social platform.
type Platform interface {
	Name() string
	// Dimensions is the target output resolution.
	Dimensions() (width, height int)
	VideoCodec() string
	AudioCodec() string
	AudioBitrate() string
	// CRF is the constant-rate-factor quality target.
	CRF() int
}

var platforms = make(map[string]Platform)

func register(p Platform) {
	platforms[p.Name()] = p
}

func Get(name string) (Platform, error) {
	p, ok := platforms[name]
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s (supported: %v)", name, Supported())
	}
	return p, nil
}

func Supported() []string {
	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
