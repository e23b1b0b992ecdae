// Package gesture implements hand pose classification and trigger
// gating for the reaction pipeline.
package gesture

import "github.com/ayusman/mudra/internal/detector"

// foldedFingers pairs each non-thumb fingertip with its PIP joint.
// A finger counts as folded when its tip sits below the PIP in image
// space (larger Y).
var foldedFingers = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// IsThumbsUp reports whether the hand forms a thumbs-up pose: the thumb
// chain MCP, IP, tip climbs strictly upward while the remaining four
// fingertips are folded below their PIP joints. All comparisons are
// strict, so a perfectly level joint pair does not count. Hands with an
// incomplete landmark set never match.
func IsThumbsUp(hand detector.HandLandmarks) bool {
	if !hand.Complete() {
		return false
	}
	return thumbExtendedUp(hand.Points) && fingersFolded(hand.Points)
}

// thumbExtendedUp checks that thumb Y positions strictly decrease from
// the MCP joint out to the tip, i.e. the thumb points up in image
// coordinates.
func thumbExtendedUp(p []detector.Point) bool {
	return p[detector.ThumbTip].Y < p[detector.ThumbIP].Y &&
		p[detector.ThumbIP].Y < p[detector.ThumbMCP].Y
}

// fingersFolded checks that every non-thumb fingertip sits strictly
// below its PIP joint.
func fingersFolded(p []detector.Point) bool {
	for _, f := range foldedFingers {
		if p[f[0]].Y <= p[f[1]].Y {
			return false
		}
	}
	return true
}
