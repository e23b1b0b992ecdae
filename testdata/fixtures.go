// Package testdata provides recorded landmark sessions for pipeline tests.
package testdata

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/ayusman/mudra/internal/detector"
)

//go:embed sessions/*.json
var sessionsFS embed.FS

// Session is a recorded detection run: the per-frame hand landmark sets
// a detector produced while watching a live scene.
type Session struct {
	Description string  `json:"description"`
	Frames      []Frame `json:"frames"`
}

// Frame holds the hands detected in one captured frame.
type Frame struct {
	Hands []detector.HandLandmarks `json:"hands"`
}

// LoadSession loads a recorded session by file name.
func LoadSession(name string) (*Session, error) {
	data, err := sessionsFS.ReadFile("sessions/" + name)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", name, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", name, err)
	}

	return &s, nil
}

// HandFrames returns the per-frame hand sets in order, ready to queue
// into a mock detector.
func (s *Session) HandFrames() [][]detector.HandLandmarks {
	frames := make([][]detector.HandLandmarks, len(s.Frames))
	for i, f := range s.Frames {
		frames[i] = f.Hands
	}
	return frames
}
