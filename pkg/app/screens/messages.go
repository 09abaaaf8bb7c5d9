package screens

// SwitchScreenMsg asks the root screen to change views.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

// StateChangedMsg wakes the program when a service mutated state from
// outside the update loop.
type StateChangedMsg struct{}
