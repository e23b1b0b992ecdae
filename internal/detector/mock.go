package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, either as a fixed
// result for every frame or as a queued per-frame sequence.
type MockDetector struct {
	hands  []HandLandmarks
	queue  [][]HandLandmarks
	err    error
	calls  int
	closed bool
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect once the
// queued sequence (if any) is exhausted.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// Queue appends per-frame results; each Detect call consumes one entry
// before falling back to the hands set via SetHands.
func (m *MockDetector) Queue(frames ...[]HandLandmarks) {
	m.queue = append(m.queue, frames...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		hands := m.queue[0]
		m.queue = m.queue[1:]
		return hands, nil
	}
	return m.hands, nil
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Close marks the detector closed.
func (m *MockDetector) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockDetector) Closed() bool {
	return m.closed
}

// ThumbsUpLandmarks returns a preset HandLandmarks forming a thumbs-up:
// the thumb chain climbs strictly upward while the other fingertips sit
// below their PIP joints. Coordinates are pixels in a 640x480 frame.
func ThumbsUpLandmarks() HandLandmarks {
	points := make([]Point, NumLandmarks)

	// Wrist at the bottom of the hand
	points[Wrist] = Point{X: 320, Y: 400}

	// Thumb extended upward (Y decreases going up)
	points[ThumbCMC] = Point{X: 352, Y: 375}
	points[ThumbMCP] = Point{X: 371, Y: 325}
	points[ThumbIP] = Point{X: 371, Y: 250}
	points[ThumbTip] = Point{X: 371, Y: 175}

	// Index finger curled (tip below the PIP joint)
	points[IndexMCP] = Point{X: 352, Y: 350}
	points[IndexPIP] = Point{X: 352, Y: 340}
	points[IndexDIP] = Point{X: 333, Y: 350}
	points[IndexTip] = Point{X: 320, Y: 360}

	// Middle finger curled
	points[MiddleMCP] = Point{X: 320, Y: 340}
	points[MiddlePIP] = Point{X: 320, Y: 330}
	points[MiddleDIP] = Point{X: 301, Y: 340}
	points[MiddleTip] = Point{X: 288, Y: 350}

	// Ring finger curled
	points[RingMCP] = Point{X: 288, Y: 350}
	points[RingPIP] = Point{X: 288, Y: 340}
	points[RingDIP] = Point{X: 269, Y: 350}
	points[RingTip] = Point{X: 256, Y: 360}

	// Pinky finger curled
	points[PinkyMCP] = Point{X: 256, Y: 360}
	points[PinkyPIP] = Point{X: 256, Y: 350}
	points[PinkyDIP] = Point{X: 237, Y: 360}
	points[PinkyTip] = Point{X: 224, Y: 370}

	return HandLandmarks{
		Points:     points,
		Handedness: "Right",
		Score:      0.95,
	}
}

// OpenPalmLandmarks returns a preset HandLandmarks with all fingers
// extended. The thumb still climbs upward, but the open fingertips keep
// it from reading as a thumbs-up. Coordinates are pixels in a 640x480 frame.
func OpenPalmLandmarks() HandLandmarks {
	points := make([]Point, NumLandmarks)

	points[Wrist] = Point{X: 320, Y: 400}

	// Thumb extended out to the side
	points[ThumbCMC] = Point{X: 355, Y: 375}
	points[ThumbMCP] = Point{X: 397, Y: 350}
	points[ThumbIP] = Point{X: 435, Y: 325}
	points[ThumbTip] = Point{X: 467, Y: 300}

	// Index finger extended upward
	points[IndexMCP] = Point{X: 352, Y: 340}
	points[IndexPIP] = Point{X: 365, Y: 275}
	points[IndexDIP] = Point{X: 371, Y: 225}
	points[IndexTip] = Point{X: 371, Y: 175}

	// Middle finger extended upward
	points[MiddleMCP] = Point{X: 320, Y: 330}
	points[MiddlePIP] = Point{X: 320, Y: 260}
	points[MiddleDIP] = Point{X: 320, Y: 200}
	points[MiddleTip] = Point{X: 320, Y: 140}

	// Ring finger extended upward
	points[RingMCP] = Point{X: 288, Y: 340}
	points[RingPIP] = Point{X: 275, Y: 275}
	points[RingDIP] = Point{X: 269, Y: 225}
	points[RingTip] = Point{X: 269, Y: 175}

	// Pinky finger extended upward
	points[PinkyMCP] = Point{X: 256, Y: 350}
	points[PinkyPIP] = Point{X: 237, Y: 300}
	points[PinkyDIP] = Point{X: 224, Y: 250}
	points[PinkyTip] = Point{X: 218, Y: 210}

	return HandLandmarks{
		Points:     points,
		Handedness: "Right",
		Score:      0.95,
	}
}

// FistLandmarks returns a preset HandLandmarks with every finger curled,
// thumb included, so neither classifier rule matches. Coordinates are
// pixels in a 640x480 frame.
func FistLandmarks() HandLandmarks {
	points := make([]Point, NumLandmarks)

	points[Wrist] = Point{X: 320, Y: 400}

	// Thumb wrapped across the curled fingers; the tip drops back below
	// the IP joint.
	points[ThumbCMC] = Point{X: 352, Y: 380}
	points[ThumbMCP] = Point{X: 365, Y: 355}
	points[ThumbIP] = Point{X: 352, Y: 345}
	points[ThumbTip] = Point{X: 333, Y: 350}

	// Index finger curled
	points[IndexMCP] = Point{X: 352, Y: 345}
	points[IndexPIP] = Point{X: 352, Y: 330}
	points[IndexDIP] = Point{X: 339, Y: 345}
	points[IndexTip] = Point{X: 326, Y: 355}

	// Middle finger curled
	points[MiddleMCP] = Point{X: 320, Y: 335}
	points[MiddlePIP] = Point{X: 320, Y: 320}
	points[MiddleDIP] = Point{X: 307, Y: 335}
	points[MiddleTip] = Point{X: 294, Y: 345}

	// Ring finger curled
	points[RingMCP] = Point{X: 288, Y: 345}
	points[RingPIP] = Point{X: 288, Y: 330}
	points[RingDIP] = Point{X: 275, Y: 345}
	points[RingTip] = Point{X: 262, Y: 355}

	// Pinky finger curled
	points[PinkyMCP] = Point{X: 256, Y: 355}
	points[PinkyPIP] = Point{X: 256, Y: 340}
	points[PinkyDIP] = Point{X: 243, Y: 355}
	points[PinkyTip] = Point{X: 230, Y: 365}

	return HandLandmarks{
		Points:     points,
		Handedness: "Right",
		Score:      0.95,
	}
}
