package annotations

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

const (
	// UnlabeledColor is used for annotations with no posture
	UnlabeledColor = "#808080"

	colorMin      = 100
	colorMax      = 230
	colorSpread   = 20
	colorAttempts = 100
)

// PostureColors assigns each posture value a distinct, stable timeline color
// for the lifetime of the process
type PostureColors struct {
	rng    *rand.Rand
	byName map[string]string
	used   map[string]bool
}

// NewPostureColors creates a palette. A nil rng uses a randomly seeded one.
func NewPostureColors(rng *rand.Rand) *PostureColors {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &PostureColors{
		rng:    rng,
		byName: make(map[string]string),
		used:   map[string]bool{UnlabeledColor: true},
	}
}

// Color returns the color for a posture, assigning one on first use
func (p *PostureColors) Color(posture string) string {
	if posture == "" {
		return UnlabeledColor
	}
	if c, ok := p.byName[posture]; ok {
		return c
	}

	c := ""
	for range colorAttempts {
		r, g, b := p.channel(), p.channel(), p.channel()
		if !saturated(r, g, b) {
			continue
		}
		if candidate := hexColor(r, g, b); !p.used[candidate] {
			c = candidate
			break
		}
	}
	if c == "" {
		c = p.fallback(posture)
	}

	p.byName[posture] = c
	p.used[c] = true
	return c
}

// Assigned returns a copy of the posture to color mapping
func (p *PostureColors) Assigned() map[string]string {
	out := make(map[string]string, len(p.byName))
	for k, v := range p.byName {
		out[k] = v
	}
	return out
}

func (p *PostureColors) channel() int {
	return colorMin + p.rng.IntN(colorMax-colorMin+1)
}

// fallback walks the palette from a point derived from the name until it
// finds a free saturated color
func (p *PostureColors) fallback(posture string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(posture))
	span := colorMax - colorMin + 1
	start := int(h.Sum32() % uint32(span*span*span))

	for i := range span * span * span {
		n := (start + i) % (span * span * span)
		r := colorMin + n/(span*span)
		g := colorMin + (n/span)%span
		b := colorMin + n%span
		if !saturated(r, g, b) {
			continue
		}
		if c := hexColor(r, g, b); !p.used[c] {
			return c
		}
	}
	return UnlabeledColor
}

func saturated(r, g, b int) bool {
	return abs(r-g) > colorSpread || abs(g-b) > colorSpread || abs(r-b) > colorSpread
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func hexColor(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
