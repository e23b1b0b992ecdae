// Package app provides the main application logic for the Mudra reaction overlay.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/bubble"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hook"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active detection.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
	// MaxHands is the number of positional hand slots tracked by the cooldown gate.
	MaxHands = 2
	// HookTimeoutMs is the timeout for a single reaction hook execution.
	HookTimeoutMs = 5000
)

// Config holds configuration options for the application.
type Config struct {
	CameraID     int
	HookDir      string
	Cooldown     time.Duration
	BubbleTTL    time.Duration
	MotionThresh float64

	// DisableMotionGating keeps the pipeline at ActiveFPS permanently.
	// A pose held perfectly still produces no frame-to-frame motion, so
	// gating can drop to idle while a hand is still up.
	DisableMotionGating bool

	// Quotes is the initial reaction text rotation. Empty falls back to
	// the built-in list.
	Quotes []string

	// Camera overrides the default webcam capture. Tests inject a mock.
	Camera capture.Camera

	// Detector overrides hand detection. When nil the MediaPipe service
	// must be available or New fails; the mock detector is never used
	// implicitly.
	Detector detector.Detector
}

// App is the main application that orchestrates pose recognition and
// reaction spawning. It owns the capture pipeline, the per-hand cooldown
// gate, the live bubble set, and the composited frame buffer served to
// the viewer.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	cooldown *gesture.Cooldown
	bubbles  *bubble.Manager
	quotes   *bubble.QuoteCycle
	hookMgr  *hook.Manager
	hookExec *hook.Executor

	enabled     bool
	activeHands int
	reactions   int
	mu          sync.RWMutex
	stopCh      chan struct{}

	latestFrame []byte
	frameMu     sync.RWMutex
}

// New creates a new App instance with the given configuration. It fails
// when no detector was injected and the MediaPipe service cannot be
// reached; a recognition pipeline without real detection would run but
// never react, which is worse than refusing to start.
func New(config Config) (*App, error) {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	quotes := config.Quotes
	if len(quotes) == 0 {
		quotes = bubble.DefaultQuotes()
	}

	a := &App{
		config:   config,
		camera:   config.Camera,
		motion:   capture.NewMotionDetector(motionThreshold),
		detector: config.Detector,
		cooldown: gesture.NewCooldown(config.Cooldown, MaxHands),
		bubbles:  bubble.NewManager(bubble.Config{TTL: config.BubbleTTL}),
		quotes:   bubble.NewQuoteCycle(quotes),
		hookMgr:  hook.NewManager(config.HookDir),
		hookExec: hook.NewExecutor(HookTimeoutMs),
		enabled:  false,
		stopCh:   nil,
	}

	if a.camera == nil {
		a.camera = capture.NewCamera(config.CameraID)
	}

	if a.detector == nil {
		mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("hand detection unavailable: %w", err)
		}
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	}

	return a, nil
}

// SetEnabled enables or disables pose detection. The pipeline keeps
// running either way; disabled frames are simply skipped.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether pose detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetQuotes replaces the reaction text rotation. The catalog API calls
// this after every edit so running triggers pick up changes immediately.
// An emptied catalog leaves the rotation empty; triggers then spawn
// blank bubbles until new quotes arrive.
func (a *App) SetQuotes(quotes []string) {
	a.quotes.SetQuotes(quotes)
}

// DiscoverHooks scans the hook directory and loads available reaction hooks.
func (a *App) DiscoverHooks() error {
	return a.hookMgr.Discover()
}

// Start begins the reaction pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Expire bubbles in the background while the pipeline runs
	a.bubbles.Start()

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Reaction pipeline started")
	return nil
}

// Stop halts the reaction pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// Stop the bubble expiry sweeper
	a.bubbles.Stop()

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector
	if err := a.detector.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}

	log.Println("Reaction pipeline stopped")
}

// LatestFrame returns the most recent composited JPEG frame. ok is
// false until the pipeline publishes its first frame.
func (a *App) LatestFrame() ([]byte, bool) {
	a.frameMu.RLock()
	defer a.frameMu.RUnlock()

	if a.latestFrame == nil {
		return nil, false
	}
	return a.latestFrame, true
}

// Bubbles returns a snapshot of the live reaction bubbles.
func (a *App) Bubbles() []bubble.Bubble {
	return a.bubbles.Live()
}

// ActiveHands returns how many hands held the pose in the most recent
// processed frame.
func (a *App) ActiveHands() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.activeHands
}

// Reactions returns the total number of reactions spawned since startup.
func (a *App) Reactions() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.reactions
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.detector
}

// HookManager returns the reaction hook manager.
func (a *App) HookManager() *hook.Manager {
	return a.hookMgr
}

// BubbleManager returns the bubble manager.
func (a *App) BubbleManager() *bubble.Manager {
	return a.bubbles
}
