// Package detector provides hand detection interfaces and types for the reaction pipeline.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point represents a 2D landmark position in frame pixel coordinates.
// X grows rightward and Y grows downward, matching image space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandLandmarks represents one detected hand as an ordered landmark list.
// A well-formed hand carries exactly NumLandmarks points. Detection can
// produce shorter lists on partial results, so consumers must check
// Complete before indexing by landmark constant.
type HandLandmarks struct {
	Points     []Point `json:"points"`
	Handedness string  `json:"handedness"` // "Left" or "Right"
	Score      float64 `json:"score"`
}

// Complete reports whether the hand carries the full landmark set.
func (h HandLandmarks) Complete() bool {
	return len(h.Points) >= NumLandmarks
}

// ToDisplay maps normalized landmark coordinates (0..1 range, as emitted
// by the detection service) onto the pixel grid of a width-by-height frame.
func ToDisplay(points []Point, width, height int) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{
			X: p.X * float64(width),
			Y: p.Y * float64(height),
		}
	}
	return out
}
