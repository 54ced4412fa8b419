package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-orrery/common"
	"github.com/Carmen-Shannon/oxy-orrery/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orrery/engine/window"
)

// DefaultMaxDeltaTime is the largest delta time passed to the tick callback.
const DefaultMaxDeltaTime = 0.1

// engine implements the Engine interface.
// Coordinates the tick, frame and window threads.
type engine struct {
	mu     *sync.Mutex
	logger *slog.Logger

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window          window.Window
	windowCloseOnce sync.Once

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	maxDeltaTime   float64
	tickCallback   func(deltaTime float64)
	frameCallback  func(deltaTime float64)
	resizeCallback func(width, height int)

	frameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, the optional frame loop and window management.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for simulation updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for simulation, input processing and body updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	//     clamped to [0, max delta time]
	SetTickCallback(callback func(deltaTime float64))

	// SetFrameCallback registers the function called each frame of the frame loop.
	// Use this for presentation such as reading the camera or updating the window title.
	// The frame loop only runs when a callback is set.
	//
	// Parameters:
	//   - callback: function to call each frame, receiving the delta time in seconds
	SetFrameCallback(callback func(deltaTime float64))

	// SetResizeCallback registers the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the frame loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// Run starts the engine. With a window it runs the window message loop on the calling goroutine and returns
	// when the window closes. Without a window it blocks until Quit is called.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, window, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		logger:           slog.Default(),
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		running:          false,
		wg:               sync.WaitGroup{},
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		maxDeltaTime:     DefaultMaxDeltaTime,
	}

	for _, opt := range options {
		opt(e)
	}
	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.mu.Lock()
			callback := e.resizeCallback
			e.mu.Unlock()
			if callback != nil {
				callback(width, height)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	if e.window != nil {
		// the window is closed on its own thread once quit is signaled
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				e.closeWindow()
			default:
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
		e.closeWindow()
	}
	e.wg.Wait()
}

// closeWindow releases the window once. Must run on the thread that created the window.
func (e *engine) closeWindow() {
	e.windowCloseOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			e.logger.Warn("failed to close window", "error", err)
		}
	})
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the tick, frame, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()

	e.mu.Lock()
	hasFrame := e.frameCallback != nil
	e.mu.Unlock()
	if hasFrame {
		e.wg.Add(1)
		go e.handleFrame()
	}
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Fires the tick callback with a clamped delta time and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer e.recoverLoop("tick")

	e.mu.Lock()
	ticker := time.NewTicker(e.engineTickRate)
	e.mu.Unlock()
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := e.clampDelta(now.Sub(lastTick).Seconds())
			lastTick = now

			e.mu.Lock()
			callback := e.tickCallback
			profiling := e.profilingEnabled
			e.mu.Unlock()

			if callback != nil {
				callback(dt)
			}
			if profiling {
				e.profiler.Tick()
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		}
	}
}

// handleFrame runs the uncapped (or frame-limited) frame loop in its own goroutine.
func (e *engine) handleFrame() {
	defer e.wg.Done()
	defer e.recoverLoop("frame")

	lastFrame := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := now.Sub(lastFrame).Seconds()
			lastFrame = now

			e.mu.Lock()
			callback := e.frameCallback
			limit := e.frameLimit
			e.mu.Unlock()

			if callback != nil {
				callback(dt)
			}

			if limit > 0 {
				if remaining := limit - time.Since(now); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// recoverLoop logs a panic from an engine goroutine and shuts the engine down instead of crashing the process.
func (e *engine) recoverLoop(loop string) {
	if r := recover(); r != nil {
		e.logger.Error("engine goroutine recovered from panic", "loop", loop, "panic", r)
		e.signalQuit()
	}
}

// clampDelta bounds a measured frame time to [0, maxDeltaTime].
func (e *engine) clampDelta(dt float64) float64 {
	return common.Clamp(dt, 0, e.maxDeltaTime)
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.engineTickRate = newRate
	if !e.running {
		return
	}

	// Replace any pending update so the running loop picks up the latest rate.
	select {
	case <-e.tickRateChannel:
	default:
	}
	e.tickRateChannel <- newRate
}

func (e *engine) SetTickCallback(callback func(deltaTime float64)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetFrameCallback(callback func(deltaTime float64)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resizeCallback = callback
}

// SetFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the frame loop.
func (e *engine) SetFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameLimit = frameDuration(fps)
}

// frameDuration converts a frame rate cap to a minimum frame duration, 0 meaning uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
