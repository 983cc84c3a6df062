package drilldown

// Visual treatment of a layer as a pure function of its depth. Only the
// topmost layer is interactive; covered layers recede slightly and dim, and
// the recession saturates so very deep stacks stay legible.

const (
	// BaseZ is the z-order of the bottom layer; each layer above paints later.
	BaseZ = 40

	shrinkPerLevel = 0.02
	maxShrink      = 0.1

	coveredOpacity = 0.7
)

// LayerStyle describes how the layer at a given depth is rendered.
type LayerStyle struct {
	Scale       float64
	Opacity     float64
	Interactive bool
	ZIndex      int
}

// StyleFor computes the style for the layer at index (0-based from the
// bottom) in a stack of total layers. The topmost layer is always full-size,
// fully opaque and the only interactive one. Covered layers shrink by 2% per
// level of depth from the bottom, saturating at 10% (index >= 5), and render
// at 70% opacity.
func StyleFor(index, total int) LayerStyle {
	topmost := index == total-1
	st := LayerStyle{
		Scale:       1,
		Opacity:     1,
		Interactive: topmost,
		ZIndex:      BaseZ + index,
	}
	if topmost {
		return st
	}
	shrink := float64(index) * shrinkPerLevel
	if shrink > maxShrink {
		shrink = maxShrink
	}
	st.Scale = 1 - shrink
	st.Opacity = coveredOpacity
	return st
}
