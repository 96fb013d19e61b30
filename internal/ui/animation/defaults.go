package animation

import "time"

// DefaultConfig returns defaults tuned for a 60 Hz display.
func DefaultConfig() Config {
	return Config{
		FrameInterval:  16 * time.Millisecond,
		IdleTransition: 800 * time.Millisecond,
	}
}
