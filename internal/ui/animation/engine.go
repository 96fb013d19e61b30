package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains animation timing values.
type Config struct {
	FrameInterval  time.Duration
	IdleTransition time.Duration
}

// Engine eases the breathing circle's scale between phase targets.
// updateScale is called without the engine lock held. A frame from a
// cancelled run can still be delivered after a newer value, so renderers
// should apply Scale() rather than trust call order.
type Engine struct {
	mu          sync.Mutex
	config      Config
	updateScale func(float32)
	cancel      context.CancelFunc
	current     float32
}

// New creates a new animation engine starting at scale 1.
func New(config Config, updateScale func(float32)) *Engine {
	defaults := DefaultConfig()
	if config.FrameInterval <= 0 {
		config.FrameInterval = defaults.FrameInterval
	}
	if config.IdleTransition <= 0 {
		config.IdleTransition = defaults.IdleTransition
	}
	return &Engine{
		config:      config,
		updateScale: updateScale,
		current:     1,
	}
}

// AnimateTo moves from the current scale to target over duration.
// A running animation is cancelled and the new one continues from wherever
// the old one stopped.
func (engine *Engine) AnimateTo(ctx context.Context, target float32, duration time.Duration) {
	if duration <= 0 {
		engine.Jump(target)
		return
	}
	engine.start(ctx, func(runCtx context.Context, from float32) {
		start := time.Now()
		for {
			progress := float64(time.Since(start)) / float64(duration)
			if progress >= 1 {
				engine.set(runCtx, target)
				return
			}
			engine.set(runCtx, Interpolate(from, target, Ease(progress)))
			if !sleepWithContext(runCtx, engine.config.FrameInterval) {
				return
			}
		}
	})
}

// Settle eases back to the idle scale using the idle transition time.
func (engine *Engine) Settle(ctx context.Context, target float32) {
	engine.AnimateTo(ctx, target, engine.config.IdleTransition)
}

// Jump sets the scale immediately.
func (engine *Engine) Jump(target float32) {
	engine.Stop()
	engine.mu.Lock()
	engine.current = target
	engine.mu.Unlock()

	engine.notifyScaleChange(target)
}

// Scale returns the last scale sent to the renderer.
func (engine *Engine) Scale() float32 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.current
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context, float32)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	from := engine.current
	engine.mu.Unlock()

	go run(runCtx, from)
}

func (engine *Engine) set(ctx context.Context, scale float32) {
	engine.mu.Lock()
	if ctx.Err() != nil {
		engine.mu.Unlock()
		return
	}
	engine.current = scale
	engine.mu.Unlock()

	engine.notifyScaleChange(scale)
}

func (engine *Engine) notifyScaleChange(scale float32) {
	if engine.updateScale != nil {
		engine.updateScale(scale)
	}
}

// Ease is a symmetric ease-in-out curve on [0,1].
func Ease(progress float64) float64 {
	if progress <= 0 {
		return 0
	}
	if progress >= 1 {
		return 1
	}
	return progress * progress * (3 - 2*progress)
}

// Interpolate returns the point at progress between from and to.
func Interpolate(from, to float32, progress float64) float32 {
	return from + (to-from)*float32(progress)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
