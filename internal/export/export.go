// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export captures the manuscript into a paginated PDF artifact.
package export

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/storyweaver-tui/internal/bus"
	"github.com/jeranaias/storyweaver-tui/internal/ledger"
	"github.com/jeranaias/storyweaver-tui/internal/util"
)

// =============================================================================
// PIPELINE STATE
// =============================================================================

// State is the export pipeline's position in its lifecycle.
type State int32

const (
	StateIdle State = iota
	StateRequested
	StateCapturing
	StateDone
	StateFailed
)

// String returns the lowercase state name used in events and logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequested:
		return "requested"
	case StateCapturing:
		return "capturing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is published on the export topic at every state change. Path is set
// on done, Error on failed.
type Event struct {
	State string `json:"state"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where the artifact is saved.
	// Default: current working directory
	OutputDir string

	// Filename is the fixed artifact name inside OutputDir.
	// Default: "story.pdf"
	Filename string

	// OpenAfterExport opens the artifact in the default application.
	OpenAfterExport bool

	// SettleDelay is how long the pipeline waits between accepting a
	// request and reading the manuscript, so in-flight edits land before
	// the capture instant.
	// Default: 200ms
	SettleDelay time.Duration
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:       ".",
		Filename:        "story.pdf",
		OpenAfterExport: false,
		SettleDelay:     200 * time.Millisecond,
	}
}

// =============================================================================
// CAPTURE INTERFACES
// =============================================================================

// DocumentSource yields the manuscript text. The pipeline reads it exactly
// once per export, at the capture instant.
type DocumentSource interface {
	Text() string
}

// Renderer turns manuscript text into a raster image.
type Renderer interface {
	Render(text string) (image.Image, error)
}

// Packager embeds a raster into the artifact file at path.
type Packager interface {
	Package(img image.Image, path string) error
}

// =============================================================================
// EXPORT PIPELINE
// =============================================================================

// errorAdvisoryPrefix opens the system turn appended when an export fails.
const errorAdvisoryPrefix = "Export failed: "

// Pipeline runs single-flight manuscript exports. Its state field is its
// own admission gate, independent of the responder gate, so an export can
// interleave with a running orchestration.
type Pipeline struct {
	state    atomic.Int32
	source   DocumentSource
	ledger   *ledger.Ledger
	bus      *bus.Bus
	opts     *Options
	renderer Renderer
	packager Packager
	log      *zap.Logger
}

// Config collects the collaborators a Pipeline needs. Nil Renderer and
// Packager select the raster and PDF defaults; a nil Logger is replaced
// with a no-op logger.
type Config struct {
	Source   DocumentSource
	Ledger   *ledger.Ledger
	Bus      *bus.Bus
	Options  *Options
	Renderer Renderer
	Packager Packager
	Logger   *zap.Logger
}

// New creates an export pipeline in the idle state.
func New(cfg Config) *Pipeline {
	opts := cfg.Options
	if opts == nil {
		opts = DefaultOptions()
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = &ManuscriptRenderer{}
	}
	packager := cfg.Packager
	if packager == nil {
		packager = &PDFPackager{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		source:   cfg.Source,
		ledger:   cfg.Ledger,
		bus:      cfg.Bus,
		opts:     opts,
		renderer: renderer,
		packager: packager,
		log:      logger,
	}
}

// State returns the pipeline's current state.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Active reports whether an export is in flight.
func (p *Pipeline) Active() bool {
	return p.State() != StateIdle
}

// Request runs one export end to end and returns the gate decision: false
// when the manuscript is blank (no state transition at all) or when an
// export is already in flight. The call is synchronous; callers run it off
// the UI thread.
func (p *Pipeline) Request() bool {
	if util.IsBlank(p.source.Text()) {
		p.log.Debug("export rejected, blank manuscript")
		return false
	}
	if !p.state.CompareAndSwap(int32(StateIdle), int32(StateRequested)) {
		p.log.Debug("export rejected, already in flight")
		return false
	}

	// From here the machine must come back to idle on every exit path,
	// failures and panics included.
	defer func() {
		p.state.Store(int32(StateIdle))
		p.publish(Event{State: StateIdle.String()})
	}()

	p.publish(Event{State: StateRequested.String()})

	// Let in-flight edits land before the capture instant.
	time.Sleep(p.opts.SettleDelay)

	p.state.Store(int32(StateCapturing))
	p.publish(Event{State: StateCapturing.String()})

	// The capture instant: the single read of the manuscript.
	text := p.source.Text()

	img, err := p.renderer.Render(text)
	if err != nil {
		p.fail(fmt.Errorf("render manuscript: %w", err))
		return true
	}

	if err := os.MkdirAll(p.opts.OutputDir, 0755); err != nil {
		p.fail(fmt.Errorf("create output directory: %w", err))
		return true
	}
	path := filepath.Join(p.opts.OutputDir, p.opts.Filename)

	if err := p.packager.Package(img, path); err != nil {
		p.fail(fmt.Errorf("package artifact: %w", err))
		return true
	}

	p.state.Store(int32(StateDone))
	p.publish(Event{State: StateDone.String(), Path: path})
	p.log.Info("export complete", zap.String("path", path))

	if p.opts.OpenAfterExport {
		if err := openFile(path); err != nil {
			// Non-fatal, the artifact was still written.
			p.log.Warn("could not open artifact", zap.Error(err))
		}
	}

	return true
}

// fail publishes the failed state and surfaces the error as a system
// advisory turn. The deferred reset in Request returns the machine to idle.
func (p *Pipeline) fail(err error) {
	p.state.Store(int32(StateFailed))
	p.publish(Event{State: StateFailed.String(), Error: err.Error()})
	if p.ledger != nil {
		p.ledger.Append(ledger.RoleSystem, ledger.KindText, errorAdvisoryPrefix+err.Error())
	}
	p.log.Warn("export failed", zap.Error(err))
}

func (p *Pipeline) publish(ev Event) {
	if p.bus == nil {
		return
	}
	_ = p.bus.Publish(bus.TopicExport, ev)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
