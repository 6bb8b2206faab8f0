package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Robotgo injects input through the OS via the robotgo bindings.
type Robotgo struct{}

// NewRobotgo creates the default OS-level input provider.
func NewRobotgo() *Robotgo {
	return &Robotgo{}
}

func (r *Robotgo) Press(key string) error {
	if err := robotgo.KeyDown(key); err != nil {
		return fmt.Errorf("failed to press key %q: %w", key, err)
	}
	return nil
}

func (r *Robotgo) Release(key string) error {
	if err := robotgo.KeyUp(key); err != nil {
		return fmt.Errorf("failed to release key %q: %w", key, err)
	}
	return nil
}

func (r *Robotgo) ClickDown() error {
	if err := robotgo.Toggle("left", "down"); err != nil {
		return fmt.Errorf("failed to press mouse button: %w", err)
	}
	return nil
}

func (r *Robotgo) ClickUp() error {
	if err := robotgo.Toggle("left", "up"); err != nil {
		return fmt.Errorf("failed to release mouse button: %w", err)
	}
	return nil
}
