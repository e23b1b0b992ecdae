package hook

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestExecutor_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	// Create a temporary directory for the test hook
	tmpDir, err := os.MkdirTemp("", "mudra-executor-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Create a shell script that echoes a success JSON response
	scriptContent := `#!/bin/sh
cat <<'EOF'
{"success":true,"data":{"message":"hello world"}}
EOF
`
	scriptPath := filepath.Join(tmpDir, "test-hook.sh")
	if err := os.WriteFile(scriptPath, []byte(scriptContent), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	// Create a hook
	h := &Hook{
		Manifest: Manifest{
			Name:       "test-hook",
			Version:    "1.0.0",
			Executable: "test-hook.sh",
			Events:     []string{"reaction"},
		},
		Path:       tmpDir,
		Executable: scriptPath,
	}

	// Create a reaction
	reaction := &Reaction{
		Quote:     "Nice!",
		HandSlot:  0,
		AnchorX:   320,
		AnchorY:   120,
		Timestamp: time.Now(),
	}

	// Create executor and execute
	executor := NewExecutor(5000) // 5 second timeout
	response, err := executor.Execute(h, reaction)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	// Verify response
	if !response.Success {
		t.Errorf("expected success=true, got false")
	}
	if response.Error != "" {
		t.Errorf("expected empty error, got %q", response.Error)
	}

	// Verify data
	var data map[string]interface{}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data["message"] != "hello world" {
		t.Errorf("expected message 'hello world', got %v", data["message"])
	}
}

func TestExecutor_Execute_ReadsStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	// Create a temporary directory for the test hook
	tmpDir, err := os.MkdirTemp("", "mudra-executor-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Create a shell script that reads stdin and echoes it back in the response
	scriptContent := `#!/bin/sh
INPUT=$(cat)
echo "{\"success\":true,\"data\":{\"received\":$INPUT}}"
`
	scriptPath := filepath.Join(tmpDir, "echo-hook.sh")
	if err := os.WriteFile(scriptPath, []byte(scriptContent), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	// Create a hook
	h := &Hook{
		Manifest: Manifest{
			Name:       "echo-hook",
			Version:    "1.0.0",
			Executable: "echo-hook.sh",
			Events:     []string{"reaction"},
		},
		Path:       tmpDir,
		Executable: scriptPath,
	}

	// Create a reaction with specific values
	reaction := &Reaction{
		Quote:      "Great job!",
		HandSlot:   1,
		Handedness: "Right",
		AnchorX:    211.5,
		AnchorY:    98.25,
		Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	// Create executor and execute
	executor := NewExecutor(5000)
	response, err := executor.Execute(h, reaction)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if !response.Success {
		t.Errorf("expected success=true, got false")
	}

	// Verify the reaction was received
	var data map[string]interface{}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}

	received, ok := data["received"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected 'received' to be an object, got %T", data["received"])
	}

	if received["quote"] != "Great job!" {
		t.Errorf("expected quote 'Great job!', got %v", received["quote"])
	}
	if received["hand_slot"] != float64(1) {
		t.Errorf("expected hand_slot 1, got %v", received["hand_slot"])
	}
	if received["handedness"] != "Right" {
		t.Errorf("expected handedness 'Right', got %v", received["handedness"])
	}
	if received["anchor_x"] != 211.5 {
		t.Errorf("expected anchor_x 211.5, got %v", received["anchor_x"])
	}
}

func TestExecutor_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	// Create a temporary directory for the test hook
	tmpDir, err := os.MkdirTemp("", "mudra-executor-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Create a shell script that sleeps longer than the timeout
	scriptContent := `#!/bin/sh
sleep 10
echo '{"success":true}'
`
	scriptPath := filepath.Join(tmpDir, "slow-hook.sh")
	if err := os.WriteFile(scriptPath, []byte(scriptContent), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	// Create a hook
	h := &Hook{
		Manifest: Manifest{
			Name:       "slow-hook",
			Version:    "1.0.0",
			Executable: "slow-hook.sh",
			Events:     []string{"reaction"},
		},
		Path:       tmpDir,
		Executable: scriptPath,
	}

	// Create a reaction
	reaction := &Reaction{
		Quote:     "Nice!",
		Timestamp: time.Now(),
	}

	// Create executor with a very short timeout (100ms)
	executor := NewExecutor(100)
	_, err = executor.Execute(h, reaction)

	// Should return a timeout error
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}

	if !strings.Contains(err.Error(), "timeout") && !strings.Contains(err.Error(), "killed") && !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("expected timeout-related error, got: %v", err)
	}
}

func TestExecutor_Execute_ErrorResponse(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	// Create a temporary directory for the test hook
	tmpDir, err := os.MkdirTemp("", "mudra-executor-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Create a shell script that returns an error response
	scriptContent := `#!/bin/sh
echo '{"success":false,"error":"something went wrong"}'
`
	scriptPath := filepath.Join(tmpDir, "error-hook.sh")
	if err := os.WriteFile(scriptPath, []byte(scriptContent), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	// Create a hook
	h := &Hook{
		Manifest: Manifest{
			Name:       "error-hook",
			Version:    "1.0.0",
			Executable: "error-hook.sh",
			Events:     []string{"reaction"},
		},
		Path:       tmpDir,
		Executable: scriptPath,
	}

	// Create a reaction
	reaction := &Reaction{
		Quote:     "Nice!",
		Timestamp: time.Now(),
	}

	// Create executor and execute
	executor := NewExecutor(5000)
	response, err := executor.Execute(h, reaction)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	// Verify error response
	if response.Success {
		t.Errorf("expected success=false, got true")
	}
	if response.Error != "something went wrong" {
		t.Errorf("expected error 'something went wrong', got %q", response.Error)
	}
}

func TestExecutor_Execute_InvalidJSON(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	// Create a temporary directory for the test hook
	tmpDir, err := os.MkdirTemp("", "mudra-executor-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Create a shell script that outputs invalid JSON
	scriptContent := `#!/bin/sh
echo 'not valid json'
`
	scriptPath := filepath.Join(tmpDir, "bad-hook.sh")
	if err := os.WriteFile(scriptPath, []byte(scriptContent), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	// Create a hook
	h := &Hook{
		Manifest: Manifest{
			Name:       "bad-hook",
			Version:    "1.0.0",
			Executable: "bad-hook.sh",
			Events:     []string{"reaction"},
		},
		Path:       tmpDir,
		Executable: scriptPath,
	}

	// Create a reaction
	reaction := &Reaction{
		Quote:     "Nice!",
		Timestamp: time.Now(),
	}

	// Create executor and execute
	executor := NewExecutor(5000)
	_, err = executor.Execute(h, reaction)

	// Should return an error for invalid JSON
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestExecutor_Execute_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	// Create a temporary directory for the test hook
	tmpDir, err := os.MkdirTemp("", "mudra-executor-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// Create a shell script that exits with non-zero status
	scriptContent := `#!/bin/sh
echo "Error: something failed" >&2
exit 1
`
	scriptPath := filepath.Join(tmpDir, "exit-hook.sh")
	if err := os.WriteFile(scriptPath, []byte(scriptContent), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	// Create a hook
	h := &Hook{
		Manifest: Manifest{
			Name:       "exit-hook",
			Version:    "1.0.0",
			Executable: "exit-hook.sh",
			Events:     []string{"reaction"},
		},
		Path:       tmpDir,
		Executable: scriptPath,
	}

	// Create a reaction
	reaction := &Reaction{
		Quote:     "Nice!",
		Timestamp: time.Now(),
	}

	// Create executor and execute
	executor := NewExecutor(5000)
	_, err = executor.Execute(h, reaction)

	// Should return an error for non-zero exit
	if err == nil {
		t.Fatal("expected error for non-zero exit, got nil")
	}
}

func TestNewExecutor(t *testing.T) {
	executor := NewExecutor(3000)
	if executor == nil {
		t.Fatal("NewExecutor() returned nil")
	}
	if executor.timeoutMs != 3000 {
		t.Errorf("expected timeoutMs=3000, got %d", executor.timeoutMs)
	}
}
