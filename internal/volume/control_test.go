package volume

import (
	"sync"
	"testing"
)

func TestNewControlDefaultLevel(t *testing.T) {
	control := NewControl()

	if control.Get() != DefaultLevel {
		t.Errorf("expected default level %d, got %d", DefaultLevel, control.Get())
	}
}

func TestSetClamping(t *testing.T) {
	testCases := []struct {
		name     string
		level    int
		expected int
	}{
		{"in range", 50, 50},
		{"minimum", 0, 0},
		{"maximum", 100, 100},
		{"below range", -5, 0},
		{"above range", 150, 100},
		{"far below range", -1000, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			control := NewControl()
			control.Set(tc.level)

			if got := control.Get(); got != tc.expected {
				t.Errorf("Set(%d) then Get() = %d, expected %d", tc.level, got, tc.expected)
			}
		})
	}
}

func TestIncreaseDecreaseCompose(t *testing.T) {
	control := NewControlAt(30)

	control.Increase(80)
	if got := control.Get(); got != 100 {
		t.Errorf("Increase(80) from 30 = %d, expected clamp to 100", got)
	}

	control.Decrease(150)
	if got := control.Get(); got != 0 {
		t.Errorf("Decrease(150) from 100 = %d, expected clamp to 0", got)
	}

	control.Increase(25)
	control.Increase(25)
	if got := control.Get(); got != 50 {
		t.Errorf("two Increase(25) from 0 = %d, expected 50", got)
	}
}

func TestNegativeAmountSymmetry(t *testing.T) {
	// Increase with a negative amount behaves like Decrease, and vice versa.
	control := NewControlAt(50)

	control.Increase(-20)
	if got := control.Get(); got != 30 {
		t.Errorf("Increase(-20) from 50 = %d, expected 30", got)
	}

	control.Decrease(-20)
	if got := control.Get(); got != 50 {
		t.Errorf("Decrease(-20) from 30 = %d, expected 50", got)
	}
}

func TestNewControlAtClamps(t *testing.T) {
	if got := NewControlAt(300).Get(); got != 100 {
		t.Errorf("NewControlAt(300) = %d, expected 100", got)
	}
	if got := NewControlAt(-1).Get(); got != 0 {
		t.Errorf("NewControlAt(-1) = %d, expected 0", got)
	}
}

func TestConcurrentMutation(t *testing.T) {
	control := NewControl()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			control.Increase(1)
		}()
		go func() {
			defer wg.Done()
			control.Decrease(1)
		}()
	}
	wg.Wait()

	level := control.Get()
	if level < MinLevel || level > MaxLevel {
		t.Errorf("concurrent mutation left level out of range: %d", level)
	}
}
