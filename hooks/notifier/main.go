// Package main provides a desktop notification hook.
// It surfaces each reaction as a system notification via
// notify-send on Linux or osascript on macOS.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Reaction represents the input from the hook executor.
type Reaction struct {
	Quote      string    `json:"quote"`
	HandSlot   int       `json:"hand_slot"`
	Handedness string    `json:"handedness,omitempty"`
	AnchorX    float64   `json:"anchor_x"`
	AnchorY    float64   `json:"anchor_y"`
	Timestamp  time.Time `json:"timestamp"`
}

// Response represents the output to the hook executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func main() {
	// Read reaction from stdin
	var reaction Reaction
	if err := json.NewDecoder(os.Stdin).Decode(&reaction); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode reaction: %v", err))
		return
	}

	if reaction.Quote == "" {
		writeErrorResponse("quote is required")
		return
	}

	if err := notify(reaction); err != nil {
		writeErrorResponse(fmt.Sprintf("notification failed: %v", err))
		return
	}

	// Write success response
	writeSuccessResponse()
}

// notify pops a desktop notification for the reaction.
func notify(reaction Reaction) error {
	title := "Thumbs up!"
	body := reaction.Quote
	if reaction.Handedness != "" {
		body = fmt.Sprintf("%s (%s hand)", reaction.Quote, strings.ToLower(reaction.Handedness))
	}

	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title %q`, body, title)
		return runCommand("osascript", "-e", script)
	case "linux":
		return runCommand("notify-send", title, body)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// runCommand executes a command and returns any error with its output.
func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
