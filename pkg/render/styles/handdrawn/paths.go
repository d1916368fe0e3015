package handdrawn

import (
	"fmt"
	"math"
	"strings"
)

const (
	wobbleMax   = 2.0
	wobbleRatio = 0.02
	tiltMax     = 2.5
)

// wobbledRect returns a closed path tracing the rectangle with each side
// bent by a small, deterministic offset.
func wobbledRect(x, y, w, h float64, seed uint64, id string) string {
	rng := newRNG(hash(id, seed))
	amp := min(wobbleMax, max(0.5, min(w, h)*wobbleRatio))
	jitter := func() float64 { return (rng.next()*2 - 1) * amp }

	corners := [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	var b strings.Builder
	fmt.Fprintf(&b, "M%.1f,%.1f", corners[0][0]+jitter(), corners[0][1]+jitter())
	for i := 1; i <= 4; i++ {
		from, to := corners[i-1], corners[i%4]
		mx := (from[0]+to[0])/2 + jitter()
		my := (from[1]+to[1])/2 + jitter()
		fmt.Fprintf(&b, " Q%.1f,%.1f %.1f,%.1f", mx, my, to[0]+jitter(), to[1]+jitter())
	}
	b.WriteString(" Z")
	return b.String()
}

// rotationFor returns a small label tilt in degrees. Wide tiles tilt less.
func rotationFor(id string, w, h float64) float64 {
	rng := newRNG(hash(id, 0))
	damp := 1.0
	if w > 0 && h > 0 {
		damp = math.Min(1, 2*h/w)
	}
	return (rng.next()*2 - 1) * tiltMax * damp
}
