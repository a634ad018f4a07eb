package components

import "grabsim/internal/engine"

// Mergeable marks an object the merge sensor reports.
type Mergeable struct {
	engine.BaseComponent
}

// SelfBody marks the player's own physical body.
type SelfBody struct {
	engine.BaseComponent
	EyeOffset float32 // camera height above the body's origin
}
