package overlay

import (
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/bubble"
)

// Bubble animation parameters for the frame compositor. Each bubble
// rises a fixed distance and slides by its drift offset over its
// lifetime. Rotation is left to richer display layers; OpenCV text
// rendering is axis-aligned.
const (
	riseDistance = 120.0
	bubblePadX   = 10
	bubblePadY   = 6
	fontScale    = 0.6
)

var (
	bubbleBgColor   = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	bubbleTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// DrawBubbles renders live bubbles onto the frame. Position and fade
// are derived from each bubble's age: fresh bubbles sit at their anchor
// fully lit and glide up and sideways, dimming toward black as the TTL
// elapses. Bubbles at or past the TTL are skipped, covering the window
// between expiry and the next sweep.
func DrawBubbles(img *gocv.Mat, bubbles []bubble.Bubble, ttl time.Duration, now time.Time) {
	if img == nil || ttl <= 0 {
		return
	}

	for _, b := range bubbles {
		age := now.Sub(b.CreatedAt)
		if age < 0 || age >= ttl {
			continue
		}

		progress := float64(age) / float64(ttl)
		x := int(b.Anchor.X + b.DriftX*progress)
		y := int(b.Anchor.Y - riseDistance*progress)
		drawBubble(img, b.Text, x, y, 1-progress)
	}
}

// drawBubble draws one message: a filled box sized to the text, with
// the text baseline at (x, y). Colors are scaled by fade, so an aging
// bubble dims out instead of vanishing abruptly. Boxes partially
// off-frame are clipped by OpenCV, so no clamping is needed.
func drawBubble(img *gocv.Mat, text string, x, y int, fade float64) {
	size := gocv.GetTextSize(text, gocv.FontHersheySimplex, fontScale, 1)

	box := image.Rect(x-bubblePadX, y-size.Y-bubblePadY, x+size.X+bubblePadX, y+bubblePadY)
	gocv.Rectangle(img, box, scaleColor(bubbleBgColor, fade), -1)
	gocv.PutText(img, text, image.Pt(x, y), gocv.FontHersheySimplex, fontScale, scaleColor(bubbleTextColor, fade), 1)
}

// scaleColor dims a color by the given factor in [0, 1].
func scaleColor(c color.RGBA, factor float64) color.RGBA {
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
