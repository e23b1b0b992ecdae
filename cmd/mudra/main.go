package main

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/bubble"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

// detectionEnabledKey is the settings key persisting the detection toggle
// across restarts.
const detectionEnabledKey = "detection_enabled"

// config holds runtime configuration, read from MUDRA_* environment
// variables after an optional .env preload.
type config struct {
	Addr            string        `env:"MUDRA_ADDR" envDefault:":8080"`
	CameraID        int           `env:"MUDRA_CAMERA_ID" envDefault:"0"`
	DataDir         string        `env:"MUDRA_DATA_DIR"`
	WebDir          string        `env:"MUDRA_WEB_DIR"`
	QuotePack       string        `env:"MUDRA_QUOTE_PACK"`
	HookDir         string        `env:"MUDRA_HOOK_DIR" envDefault:"hooks"`
	Cooldown        time.Duration `env:"MUDRA_COOLDOWN" envDefault:"400ms"`
	BubbleTTL       time.Duration `env:"MUDRA_BUBBLE_TTL" envDefault:"4s"`
	MotionThreshold float64       `env:"MUDRA_MOTION_THRESHOLD" envDefault:"1.0"`
	MotionGating    bool          `env:"MUDRA_MOTION_GATING" envDefault:"true"`
	MockDetector    bool          `env:"MUDRA_MOCK_DETECTOR" envDefault:"false"`
	Tray            bool          `env:"MUDRA_TRAY" envDefault:"false"`
}

// parseConfig loads configuration from environment variables.
func parseConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func main() {
	fmt.Println("Mudra - Thumbs-Up Reaction Overlay")

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] No .env file found, using system environment variables")
	} else {
		log.Println("[INFO] Loaded environment variables from .env file")
	}

	cfg, err := parseConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the store
	dataDir := cfg.DataDir
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dataDir = filepath.Join(homeDir, ".mudra")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Seed the quote catalog on first run
	if err := seedQuotes(st, cfg.QuotePack); err != nil {
		log.Fatalf("Failed to seed quote catalog: %v", err)
	}

	quotes, err := st.Quotes().Texts()
	if err != nil {
		log.Fatalf("Failed to load quote catalog: %v", err)
	}

	appCfg := app.Config{
		CameraID:            cfg.CameraID,
		HookDir:             cfg.HookDir,
		Cooldown:            cfg.Cooldown,
		BubbleTTL:           cfg.BubbleTTL,
		MotionThresh:        cfg.MotionThreshold,
		DisableMotionGating: !cfg.MotionGating,
		Quotes:              quotes,
	}
	if cfg.MockDetector {
		// Development escape hatch; detection results are canned
		log.Println("[WARN] MUDRA_MOCK_DETECTOR set, hand detection is simulated")
		appCfg.Detector = detector.NewMockDetector()
	}

	a, err := app.New(appCfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	if err := a.DiscoverHooks(); err != nil {
		log.Printf("Hook discovery failed: %v", err)
	} else if n := len(a.HookManager().List()); n > 0 {
		log.Printf("Discovered %d reaction hook(s)", n)
	}

	// Restore the persisted detection toggle, defaulting to on
	enabled := true
	if v, err := st.Settings().Get(detectionEnabledKey); err == nil {
		enabled = v == "true"
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to read detection toggle: %v", err)
	}
	a.SetEnabled(enabled)

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start reaction pipeline: %v", err)
	}
	defer a.Stop()

	// Find web directory
	webDir := cfg.WebDir
	if webDir == "" {
		webDir = findWebDir(dataDir)
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Frames:    a,
		State:     a,
		OnQuotesChanged: func() {
			texts, err := st.Quotes().Texts()
			if err != nil {
				log.Printf("Failed to reload quote catalog: %v", err)
				return
			}
			a.SetQuotes(texts)
		},
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if cfg.Tray {
		runTray(a, st, cfg.Addr)
		return
	}

	// Headless mode: run until interrupted
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Println("Shutting down")
}

// seedQuotes populates an empty quote catalog, either from a YAML quote
// pack or from the built-in defaults. A catalog that already has quotes
// is left alone.
func seedQuotes(st *store.Store, packPath string) error {
	texts := bubble.DefaultQuotes()
	if packPath != "" {
		pack, err := bubble.LoadQuotePack(packPath)
		if err != nil {
			return err
		}
		texts = pack.Quotes
	}
	return st.Quotes().Seed(texts, func() string { return uuid.New().String() })
}

// runTray hands the main goroutine to the system tray loop; systray
// requires running on the main thread on macOS.
func runTray(a *app.App, st *store.Store, addr string) {
	t := tray.New(a.IsEnabled())
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		if err := st.Settings().Set(detectionEnabledKey, strconv.FormatBool(enabled)); err != nil {
			log.Printf("Failed to persist detection toggle: %v", err)
		}
	})
	t.OnViewer(func() {
		openBrowser(viewerURL(addr))
	})
	t.OnQuit(func() {
		fmt.Println("Shutting down")
	})

	// Keep the reaction counter in the menu fresh
	stopCounter := make(chan struct{})
	defer close(stopCounter)
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stopCounter:
				return
			case <-ticker.C:
				t.SetReactionCount(a.Reactions())
			}
		}
	}()

	t.Run()
}

// viewerURL builds a browsable URL from a listen address.
func viewerURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://localhost:8080"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%s", host, port)
}

// openBrowser launches the default browser at the given URL.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks "web", "../web", "../../web", and the data directory.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	dataWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(dataWebDir); err == nil && info.IsDir() {
		return dataWebDir
	}

	return ""
}
