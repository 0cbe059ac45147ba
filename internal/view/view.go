// Package view contains the storefront's headless view components.
//
// A component renders plain data into a display state that can be
// serialized as a screen snapshot, and turns user interactions (clicks,
// input, submits) into bus events or callbacks. Components never touch
// application state.
package view

import (
	"github.com/NetLive5/weblarek/pkg/errors"
)

// Content is anything the modal can host
type Content interface {
	ViewName() string
	Snapshot() any
}

// Actions holds the click callback of a component that does not talk to the bus directly
type Actions struct {
	OnClick func()
}

func (a *Actions) click() {
	if a != nil && a.OnClick != nil {
		a.OnClick()
	}
}

// ButtonState is the display state of a button
type ButtonState struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

func errDisabled(what string) error {
	return &errors.ErrConflict{Message: what + " is disabled"}
}
