// Package coloring maps normalized metric values onto color gradients for
// graph rendering.
//
// Gradients are defined by a small set of key colors and interpolated in
// CIE Lab space, which keeps the perceived brightness ramp even across the
// whole range. Dark mode inverts lightness in HSL so the gradient keeps
// its hue while sitting on a dark background.
package coloring

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient is a named color gradient preset.
type Gradient int

// Gradient presets: five single-hue sequential ramps, four two-hue ramps,
// and three perceptually-uniform multi-hue ramps.
const (
	Reds Gradient = iota
	Oranges
	Purples
	Greens
	Blues
	BuPu
	OrRd
	PuRd
	RdPu
	Viridis
	Cividis
	Plasma
)

var gradientNames = map[string]Gradient{
	"reds":    Reds,
	"oranges": Oranges,
	"purples": Purples,
	"greens":  Greens,
	"blues":   Blues,
	"bu-pu":   BuPu,
	"or-rd":   OrRd,
	"pu-rd":   PuRd,
	"rd-pu":   RdPu,
	"viridis": Viridis,
	"cividis": Cividis,
	"plasma":  Plasma,
}

// ParseGradient resolves a kebab-case gradient name such as "reds" or
// "bu-pu".
func ParseGradient(name string) (Gradient, error) {
	g, ok := gradientNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown gradient %q", name)
	}
	return g, nil
}

func (g Gradient) String() string {
	for name, v := range gradientNames {
		if v == g {
			return name
		}
	}
	return "unknown"
}

// stops returns the key colors of the gradient from low to high values.
func (g Gradient) stops() []string {
	switch g {
	case Oranges:
		return []string{"#fff5eb", "#fd8d3c", "#7f2704"}
	case Purples:
		return []string{"#fcfbfd", "#807dba", "#3f007d"}
	case Greens:
		return []string{"#f7fcf5", "#41ab5d", "#00441b"}
	case Blues:
		return []string{"#f7fbff", "#4292c6", "#08306b"}
	case BuPu:
		return []string{"#f7fcfd", "#8c96c6", "#4d004b"}
	case OrRd:
		return []string{"#fff7ec", "#fc8d59", "#7f0000"}
	case PuRd:
		return []string{"#f7f4f9", "#df65b0", "#67001f"}
	case RdPu:
		return []string{"#fff7f3", "#f768a1", "#49006a"}
	case Viridis:
		return []string{"#440154", "#31688e", "#35b779", "#fde725"}
	case Cividis:
		return []string{"#00204d", "#7b7b78", "#ffea46"}
	case Plasma:
		return []string{"#0d0887", "#cc4778", "#f0f921"}
	default:
		return []string{"#fff5f0", "#fb6a4a", "#67000d"}
	}
}

// At evaluates the gradient at t in [0, 1]. Values outside the interval
// are clamped. When inverse is set the gradient runs high to low; when
// darkMode is set the lightness of the result is flipped.
func (g Gradient) At(t float64, darkMode, inverse bool) colorful.Color {
	if inverse {
		t = 1 - t
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	c := blend(g.stops(), t)
	if darkMode {
		c = flipLightness(c)
	}
	return c
}

// Hex evaluates the gradient at t and formats the result as "#rrggbb".
func (g Gradient) Hex(t float64, darkMode, inverse bool) string {
	return g.At(t, darkMode, inverse).Clamped().Hex()
}

// Background returns the fill used for nodes without a metric value:
// white, or black in dark mode.
func Background(darkMode bool) string {
	if darkMode {
		return "#000000"
	}
	return "#ffffff"
}

func blend(stops []string, t float64) colorful.Color {
	segments := len(stops) - 1
	position := t * float64(segments)
	segment := int(position)
	if segment >= segments {
		segment = segments - 1
	}

	low, _ := colorful.Hex(stops[segment])
	high, _ := colorful.Hex(stops[segment+1])
	return low.BlendLab(high, position-float64(segment))
}

func flipLightness(c colorful.Color) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, 1-l)
}
