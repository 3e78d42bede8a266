// Package gradient mixes colors inside a chosen color space.
package gradient

import (
	"fmt"
	"strings"

	"github.com/jsvensson/colorspaces/internal/color"
)

// Space selects the color space interpolation happens in.
type Space int

const (
	SpaceLCH Space = iota
	SpaceLAB
	SpaceXYZ
	SpaceRGB
)

var spaceNames = map[Space]string{
	SpaceLCH: "lch",
	SpaceLAB: "lab",
	SpaceXYZ: "xyz",
	SpaceRGB: "rgb",
}

// SpaceNames lists the accepted space names in a stable order.
var SpaceNames = []string{"lch", "lab", "xyz", "rgb"}

func (s Space) String() string {
	if name, ok := spaceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

// ParseSpace parses a space name, case-insensitively.
func ParseSpace(name string) (Space, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for s, n := range spaceNames {
		if n == lower {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown color space %q (valid: %s)", name, strings.Join(SpaceNames, ", "))
}

// Mix interpolates from towards to by t inside space and returns the result
// as sRGB.
func Mix(from, to color.RGB, t float64, space Space) color.RGB {
	switch space {
	case SpaceRGB:
		return from.Lerp(to, t)
	case SpaceXYZ:
		return from.XYZ().Lerp(to.XYZ(), t).RGB()
	case SpaceLAB:
		return from.LAB().Lerp(to.LAB(), t).RGB()
	default:
		return from.LCH().Lerp(to.LCH(), t).RGB()
	}
}

// Steps returns n evenly spaced colors from from to to, both included.
func Steps(from, to color.RGB, n int, space Space) ([]color.RGB, error) {
	if n < 2 {
		return nil, fmt.Errorf("gradient needs at least 2 steps, got %d", n)
	}
	stops := make([]color.RGB, n)
	for i := range stops {
		t := float64(i) / float64(n-1)
		stops[i] = Mix(from, to, t, space)
	}
	// Endpoints are returned as given rather than round-tripped.
	stops[0] = from
	stops[n-1] = to
	return stops, nil
}
