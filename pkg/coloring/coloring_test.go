package coloring

import (
	"testing"
)

func TestParseGradient(t *testing.T) {
	tests := []struct {
		name string
		want Gradient
	}{
		{"reds", Reds},
		{"bu-pu", BuPu},
		{"or-rd", OrRd},
		{"viridis", Viridis},
		{"plasma", Plasma},
	}
	for _, tt := range tests {
		g, err := ParseGradient(tt.name)
		if err != nil {
			t.Errorf("ParseGradient(%q): %v", tt.name, err)
			continue
		}
		if g != tt.want {
			t.Errorf("ParseGradient(%q) = %v, want %v", tt.name, g, tt.want)
		}
		if g.String() != tt.name {
			t.Errorf("String() = %q, want %q", g.String(), tt.name)
		}
	}

	if _, err := ParseGradient("magma"); err == nil {
		t.Error("ParseGradient on an unknown name should fail")
	}
}

func TestGradientEndpoints(t *testing.T) {
	if got := Reds.Hex(0, false, false); got != "#fff5f0" {
		t.Errorf("Reds at 0 = %q, want %q", got, "#fff5f0")
	}
	if got := Reds.Hex(1, false, false); got != "#67000d" {
		t.Errorf("Reds at 1 = %q, want %q", got, "#67000d")
	}
	// The midpoint of a three-stop ramp lands exactly on the middle stop.
	if got := Reds.Hex(0.5, false, false); got != "#fb6a4a" {
		t.Errorf("Reds at 0.5 = %q, want %q", got, "#fb6a4a")
	}
	// Viridis has four stops, so t=1/3 lands on the second.
	if got := Viridis.Hex(1.0/3.0, false, false); got != "#31688e" {
		t.Errorf("Viridis at 1/3 = %q, want %q", got, "#31688e")
	}
}

func TestGradientClamp(t *testing.T) {
	if got, want := Reds.Hex(-0.5, false, false), Reds.Hex(0, false, false); got != want {
		t.Errorf("Hex(-0.5) = %q, want clamped %q", got, want)
	}
	if got, want := Reds.Hex(2, false, false), Reds.Hex(1, false, false); got != want {
		t.Errorf("Hex(2) = %q, want clamped %q", got, want)
	}
}

func TestGradientInverse(t *testing.T) {
	if got, want := Reds.Hex(0, false, true), Reds.Hex(1, false, false); got != want {
		t.Errorf("inverse at 0 = %q, want %q", got, want)
	}
	if got, want := Reds.Hex(0.25, false, true), Reds.Hex(0.75, false, false); got != want {
		t.Errorf("inverse at 0.25 = %q, want %q", got, want)
	}
}

func TestGradientDarkMode(t *testing.T) {
	// Flipping lightness keeps hue but sends the near-white low end dark.
	light := Reds.At(0, false, false)
	dark := Reds.At(0, true, false)

	lh, _, ll := light.Hsl()
	dh, _, dl := dark.Hsl()
	if ll < 0.9 {
		t.Fatalf("Reds low end lightness = %v, expected near white", ll)
	}
	if dl > 0.15 {
		t.Errorf("dark mode lightness = %v, want flipped low", dl)
	}
	if diff := lh - dh; diff > 1 || diff < -1 {
		t.Errorf("dark mode hue %v drifted from %v", dh, lh)
	}
}

func TestBackground(t *testing.T) {
	if got := Background(false); got != "#ffffff" {
		t.Errorf("Background(false) = %q, want #ffffff", got)
	}
	if got := Background(true); got != "#000000" {
		t.Errorf("Background(true) = %q, want #000000", got)
	}
}
