package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/hook"
	"github.com/ayusman/mudra/internal/overlay"
)

// runPipeline is the main loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based
// on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Run hand detection and classify each hand's pose
// 4. Spawn a quote bubble for every trigger the cooldown gate permits
// 5. Composite skeleton and bubbles onto the frame for the viewer
// 6. After 2s without motion, switch back to idle mode
func (a *App) runPipeline(stopCh chan struct{}) {
	// Track whether we're in active mode
	activeMode := a.config.DisableMotionGating

	// Track the last motion detection time
	lastMotionTime := time.Now()

	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(IdleFPS)
	if activeMode {
		a.camera.SetFPS(ActiveFPS)
		frameInterval = time.Second / time.Duration(ActiveFPS)
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			if !a.config.DisableMotionGating {
				// Step 1: Motion detection
				motionDetected, _ := a.motion.Detect(frame)

				if motionDetected {
					lastMotionTime = time.Now()

					// Switch to active mode if not already
					if !activeMode {
						activeMode = true
						a.camera.SetFPS(ActiveFPS)
						frameInterval = time.Second / time.Duration(ActiveFPS)
						ticker.Reset(frameInterval)
						log.Println("Switched to active mode")
					}
				} else if activeMode {
					// Check if we should switch back to idle mode
					if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
						activeMode = false
						a.camera.SetFPS(IdleFPS)
						frameInterval = time.Second / time.Duration(IdleFPS)
						ticker.Reset(frameInterval)
						log.Println("Switched to idle mode")
					}
				}
			}

			// While idle, skip detection but keep publishing so live
			// bubbles finish their float instead of freezing mid-air
			if !activeMode {
				a.compositeAndPublish(frame, time.Now())
				frame.Close()
				continue
			}

			a.processFrame(frame, time.Now())
			frame.Close()
		}
	}
}

// processFrame runs one recognition cycle on a frame: classify each
// hand, draw the skeleton overlay, gate triggers through the per-slot
// cooldown, spawn bubbles for permitted triggers, and publish the
// composited result. now is the cycle timestamp; tests drive it
// directly to step through cooldown windows without waiting.
func (a *App) processFrame(frame *gocv.Mat, now time.Time) {
	// Step 2: Hand detection
	hands, err := a.detector.Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		a.compositeAndPublish(frame, now)
		return
	}

	// Step 3: Classify and render each hand in slot order
	active := 0
	for i := range hands {
		hand := hands[i]

		// Emphasis follows this frame's classification only
		isActive := gesture.IsThumbsUp(hand)
		if isActive {
			active++
		}

		overlay.DrawHand(frame, hand, isActive)

		// Step 4: Cooldown gate, then spawn
		if isActive && a.cooldown.Allow(i, now) {
			a.spawnReaction(hand, i, now)
		}
	}

	a.mu.Lock()
	a.activeHands = active
	a.mu.Unlock()

	a.compositeAndPublish(frame, now)
}

// spawnReaction creates the bubble for one permitted trigger and fires
// reaction hooks in the background.
func (a *App) spawnReaction(hand detector.HandLandmarks, slot int, now time.Time) {
	text, _ := a.quotes.Next()
	anchor := hand.Points[detector.ThumbTip]

	b := a.bubbles.SpawnAt(anchor, text, now)

	a.mu.Lock()
	a.reactions++
	a.mu.Unlock()

	log.Printf("Reaction %q spawned for hand %d at (%.0f, %.0f)", b.Text, slot, anchor.X, anchor.Y)

	go a.fireHooks(&hook.Reaction{
		Quote:      b.Text,
		HandSlot:   slot,
		Handedness: hand.Handedness,
		AnchorX:    anchor.X,
		AnchorY:    anchor.Y,
		Timestamp:  now,
	})
}

// fireHooks runs every discovered hook for one reaction. Failures are
// logged and never propagated; a broken hook must not stall the
// pipeline.
func (a *App) fireHooks(reaction *hook.Reaction) {
	for _, h := range a.hookMgr.List() {
		if _, err := a.hookExec.Execute(h, reaction); err != nil {
			log.Printf("Hook %s failed: %v", h.Manifest.Name, err)
		}
	}
}

// compositeAndPublish draws the live bubbles onto the frame and stores
// the JPEG-encoded result for the stream handler.
func (a *App) compositeAndPublish(frame *gocv.Mat, now time.Time) {
	overlay.DrawBubbles(frame, a.bubbles.Live(), a.bubbles.TTL(), now)

	// Encode as JPEG
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		log.Printf("Error encoding frame: %v", err)
		return
	}
	// GetBytes memory is owned by the native buffer, copy before Close
	data := append([]byte(nil), buf.GetBytes()...)
	buf.Close()

	a.frameMu.Lock()
	a.latestFrame = data
	a.frameMu.Unlock()
}
