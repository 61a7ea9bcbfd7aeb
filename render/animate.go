// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"math"
	"strconv"
	"time"
)

// Reveal animation timing
const (
	RevealDuration = 1200 * time.Millisecond
	FrameInterval  = time.Second / 60
)

// Easing maps linear progress t in [0,1] to eased progress
type Easing func(t float64) float64

// EaseQuad is a symmetric ease-in/ease-out curve: slow start, fast middle, slow end.
func EaseQuad(t float64) float64 {
	return t * t / (2*(t*t-t) + 1)
}

// Interpolate returns the values shown on each frame while moving from start to end.
// The first value is at t=0 and the last value is exactly end.
func Interpolate(start, end float64, duration, frame time.Duration, ease Easing) []float64 {
	if duration <= 0 || frame <= 0 {
		return []float64{end}
	}
	if ease == nil {
		ease = func(t float64) float64 { return t }
	}

	change := end - start
	n := int(duration / frame)
	values := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		elapsed := time.Duration(i) * frame
		values = append(values, start+ease(float64(elapsed)/float64(duration))*change)
	}
	return append(values, end)
}

// FormatFrame renders an in-flight value the way the percent label shows it
func FormatFrame(v float64) string {
	return strconv.Itoa(int(math.Ceil(v))) + "%"
}

// Winners marks every option whose final percentage equals the maximum.
func Winners(percentages []float64) []bool {
	winners := make([]bool, len(percentages))
	if len(percentages) == 0 {
		return winners
	}
	top := percentages[0]
	for _, p := range percentages[1:] {
		if p > top {
			top = p
		}
	}
	for i, p := range percentages {
		winners[i] = p == top
	}
	return winners
}
