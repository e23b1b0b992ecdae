package detector

import (
	"errors"
	"testing"
)

func TestToDisplay(t *testing.T) {
	norm := []Point{
		{X: 0, Y: 0},
		{X: 1, Y: 1},
		{X: 0.5, Y: 0.25},
	}

	got := ToDisplay(norm, 640, 480)

	want := []Point{
		{X: 0, Y: 0},
		{X: 640, Y: 480},
		{X: 320, Y: 120},
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestToDisplay_PreservesLength(t *testing.T) {
	// Partial landmark lists must stay partial so consumers can skip them.
	short := []Point{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.4}}

	got := ToDisplay(short, 640, 480)
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestHandLandmarks_Complete(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   bool
	}{
		{"full set", NumLandmarks, true},
		{"empty", 0, false},
		{"one short", NumLandmarks - 1, false},
		{"single point", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HandLandmarks{Points: make([]Point, tt.points)}
			if got := h.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestThumbsUpLandmarks_Shape(t *testing.T) {
	h := ThumbsUpLandmarks()

	if !h.Complete() {
		t.Fatalf("fixture has %d points, want %d", len(h.Points), NumLandmarks)
	}

	// Thumb must climb strictly upward (Y decreasing toward the tip).
	if !(h.Points[ThumbTip].Y < h.Points[ThumbIP].Y) {
		t.Error("thumb tip should be above IP joint")
	}
	if !(h.Points[ThumbIP].Y < h.Points[ThumbMCP].Y) {
		t.Error("thumb IP should be above MCP joint")
	}

	// Every other fingertip must sit below its PIP joint.
	pairs := [][2]int{
		{IndexTip, IndexPIP},
		{MiddleTip, MiddlePIP},
		{RingTip, RingPIP},
		{PinkyTip, PinkyPIP},
	}
	for _, p := range pairs {
		if !(h.Points[p[0]].Y > h.Points[p[1]].Y) {
			t.Errorf("fingertip %d should be below PIP %d", p[0], p[1])
		}
	}
}

func TestOpenPalmLandmarks_Shape(t *testing.T) {
	h := OpenPalmLandmarks()

	if !h.Complete() {
		t.Fatalf("fixture has %d points, want %d", len(h.Points), NumLandmarks)
	}

	// Extended fingertips sit above their PIP joints.
	pairs := [][2]int{
		{IndexTip, IndexPIP},
		{MiddleTip, MiddlePIP},
		{RingTip, RingPIP},
		{PinkyTip, PinkyPIP},
	}
	for _, p := range pairs {
		if !(h.Points[p[0]].Y < h.Points[p[1]].Y) {
			t.Errorf("fingertip %d should be above PIP %d", p[0], p[1])
		}
	}
}

func TestFistLandmarks_Shape(t *testing.T) {
	h := FistLandmarks()

	if !h.Complete() {
		t.Fatalf("fixture has %d points, want %d", len(h.Points), NumLandmarks)
	}

	// The wrapped thumb tip drops back below the IP joint.
	if h.Points[ThumbTip].Y < h.Points[ThumbIP].Y {
		t.Error("fist thumb tip should not be above IP joint")
	}
}

func TestMockDetector_SetHands(t *testing.T) {
	m := NewMockDetector()
	m.SetHands([]HandLandmarks{ThumbsUpLandmarks()})

	hands, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(hands) != 1 {
		t.Fatalf("len(hands) = %d, want 1", len(hands))
	}

	// The same result repeats on subsequent calls.
	hands, _ = m.Detect(nil)
	if len(hands) != 1 {
		t.Errorf("second Detect len(hands) = %d, want 1", len(hands))
	}
	if m.Calls() != 2 {
		t.Errorf("Calls() = %d, want 2", m.Calls())
	}
}

func TestMockDetector_Queue(t *testing.T) {
	m := NewMockDetector()
	m.Queue(
		[]HandLandmarks{ThumbsUpLandmarks()},
		nil,
		[]HandLandmarks{OpenPalmLandmarks(), FistLandmarks()},
	)
	m.SetHands([]HandLandmarks{FistLandmarks()})

	wantCounts := []int{1, 0, 2, 1, 1}
	for i, want := range wantCounts {
		hands, err := m.Detect(nil)
		if err != nil {
			t.Fatalf("Detect() call %d error = %v", i, err)
		}
		if len(hands) != want {
			t.Errorf("call %d: len(hands) = %d, want %d", i, len(hands), want)
		}
	}
}

func TestMockDetector_SetError(t *testing.T) {
	m := NewMockDetector()
	wantErr := errors.New("camera unplugged")
	m.SetError(wantErr)

	if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}

func TestMockDetector_Close(t *testing.T) {
	m := NewMockDetector()
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !m.Closed() {
		t.Error("Closed() = false after Close")
	}
}
