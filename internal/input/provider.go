package input

// Provider performs atomic synthetic input events. Calls carry no built-in
// delay; all timing is the Actuator's responsibility.
type Provider interface {
	Press(key string) error
	Release(key string) error
	ClickDown() error
	ClickUp() error
}
