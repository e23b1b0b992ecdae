// Package overlay draws hand skeletons and reaction bubbles onto video
// frames using GoCV primitives.
package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// Bones lists the landmark index pairs connected by skeleton lines,
// following the MediaPipe hand topology: the palm ring plus the thumb
// and four finger chains.
var Bones = [][2]int{
	// Thumb
	{detector.Wrist, detector.ThumbCMC},
	{detector.ThumbCMC, detector.ThumbMCP},
	{detector.ThumbMCP, detector.ThumbIP},
	{detector.ThumbIP, detector.ThumbTip},
	// Index finger
	{detector.Wrist, detector.IndexMCP},
	{detector.IndexMCP, detector.IndexPIP},
	{detector.IndexPIP, detector.IndexDIP},
	{detector.IndexDIP, detector.IndexTip},
	// Middle finger
	{detector.IndexMCP, detector.MiddleMCP},
	{detector.MiddleMCP, detector.MiddlePIP},
	{detector.MiddlePIP, detector.MiddleDIP},
	{detector.MiddleDIP, detector.MiddleTip},
	// Ring finger
	{detector.MiddleMCP, detector.RingMCP},
	{detector.RingMCP, detector.RingPIP},
	{detector.RingPIP, detector.RingDIP},
	{detector.RingDIP, detector.RingTip},
	// Pinky finger
	{detector.RingMCP, detector.PinkyMCP},
	{detector.Wrist, detector.PinkyMCP},
	{detector.PinkyMCP, detector.PinkyPIP},
	{detector.PinkyPIP, detector.PinkyDIP},
	{detector.PinkyDIP, detector.PinkyTip},
}

// Skeleton drawing parameters.
const (
	boneThickness       = 2
	activeBoneThickness = 3
	markerRadius        = 3
	tipGlowRadius       = 12
)

var (
	boneColor   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	markerColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	activeColor = color.RGBA{R: 64, G: 220, B: 96, A: 255}
)

// DrawHand renders the skeleton for one hand. When active is true the
// bones switch to the emphasis palette and the thumb tip gets a glow
// ring. The flag reflects the current frame's pose only, so the
// highlight always tracks what the hand is doing right now. Hands with
// an incomplete landmark set are not drawn.
func DrawHand(img *gocv.Mat, hand detector.HandLandmarks, active bool) {
	if img == nil || !hand.Complete() {
		return
	}

	lineColor := boneColor
	thickness := boneThickness
	if active {
		lineColor = activeColor
		thickness = activeBoneThickness
	}

	for _, bone := range Bones {
		gocv.Line(img, toPt(hand.Points[bone[0]]), toPt(hand.Points[bone[1]]), lineColor, thickness)
	}

	for i := 0; i < detector.NumLandmarks; i++ {
		gocv.Circle(img, toPt(hand.Points[i]), markerRadius, markerColor, -1)
	}

	if active {
		gocv.Circle(img, toPt(hand.Points[detector.ThumbTip]), tipGlowRadius, activeColor, 2)
	}
}

func toPt(p detector.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}
