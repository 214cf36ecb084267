package volume

import (
	"log/slog"
	"sync"
)

// Volume level bounds. Mutations saturate at these limits rather than
// wrapping or erroring.
const (
	MinLevel     = 0
	MaxLevel     = 100
	DefaultLevel = 30
)

// Control holds a single volume level shared by the playback paths that
// reference it. It is safe for concurrent use; independent playback sessions
// can share one Control or own separate ones.
type Control struct {
	mutex sync.RWMutex
	level int
}

// NewControl creates a volume control at DefaultLevel.
func NewControl() *Control {
	slog.Debug("creating new volume control", "default_level", DefaultLevel)
	return &Control{level: DefaultLevel}
}

// NewControlAt creates a volume control at the given level, clamped to range.
func NewControlAt(level int) *Control {
	control := &Control{level: clamp(level)}
	slog.Debug("creating new volume control", "level", control.level, "requested", level)
	return control
}

// Set replaces the current level, clamping to [MinLevel, MaxLevel].
func (c *Control) Set(level int) {
	clamped := clamp(level)

	c.mutex.Lock()
	oldLevel := c.level
	c.level = clamped
	c.mutex.Unlock()

	slog.Info("volume changed", "old_level", oldLevel, "new_level", clamped, "requested", level)
}

// Increase raises the level by amount. Clamping absorbs any overshoot, so a
// negative amount behaves like Decrease.
func (c *Control) Increase(amount int) {
	c.Set(c.Get() + amount)
}

// Decrease lowers the level by amount. A negative amount behaves like
// Increase.
func (c *Control) Decrease(amount int) {
	c.Set(c.Get() - amount)
}

// Get returns the current level.
func (c *Control) Get() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.level
}

func clamp(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
