// Package hook provides reaction hook discovery and execution for the Mudra overlay.
package hook

import (
	"encoding/json"
	"time"
)

// Manifest describes a hook's metadata and entry point.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	Events      []string `json:"events,omitempty"`
}

// Reaction is the payload delivered to hooks when a recognized pose
// spawns a quote bubble.
type Reaction struct {
	Quote      string    `json:"quote"`
	HandSlot   int       `json:"hand_slot"`
	Handedness string    `json:"handedness,omitempty"`
	AnchorX    float64   `json:"anchor_x"`
	AnchorY    float64   `json:"anchor_y"`
	Timestamp  time.Time `json:"timestamp"`
}

// Response represents the response from a hook execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Hook represents a discovered hook with its manifest and location.
type Hook struct {
	Manifest   Manifest
	Path       string
	Executable string
}
