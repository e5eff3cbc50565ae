package scene

// fadeBand is the fraction of the visibility threshold where labels begin to
// fade in. Below fadeBand*threshold a label is fully hidden, above the
// threshold fully shown, linear in between. The same ratio serves the 2D
// zoom-scale fade and the 3D camera-distance fade; the thresholds themselves
// are independent, empirically tuned values.
const fadeBand = 0.67

// ZoomAlpha returns the label opacity for a 2D zoom scale against a
// threshold. Highlighted elements' labels stay fully visible at any zoom.
func ZoomAlpha(scale, threshold float64, highlighted bool) float64 {
	if highlighted {
		return 1
	}
	if threshold <= 0 {
		return 1
	}
	low := threshold * fadeBand
	switch {
	case scale <= low:
		return 0
	case scale >= threshold:
		return 1
	default:
		return (scale - low) / (threshold - low)
	}
}

// DistanceAlpha returns the label opacity for a 3D sprite at the given
// camera distance. Near sprites are fully shown; past the threshold they
// fade out over the same band ratio, fully hidden beyond threshold/fadeBand.
func DistanceAlpha(distance, threshold float64, highlighted bool) float64 {
	if highlighted {
		return 1
	}
	if threshold <= 0 {
		return 1
	}
	far := threshold / fadeBand
	switch {
	case distance <= threshold:
		return 1
	case distance >= far:
		return 0
	default:
		return (far - distance) / (far - threshold)
	}
}
