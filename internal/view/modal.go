package view

import (
	"github.com/NetLive5/weblarek/internal/events"
)

// ModalSnapshot is the overlay with the view it hosts
type ModalSnapshot struct {
	Active  bool   `json:"active"`
	View    string `json:"view,omitempty"`
	Content any    `json:"content,omitempty"`
}

// Modal hosts one Content at a time and announces open/close on the bus
type Modal struct {
	events  events.Emitter
	active  bool
	content Content
}

// NewModal creates a closed, empty modal
func NewModal(emitter events.Emitter) *Modal {
	return &Modal{events: emitter}
}

// Render replaces the hosted content and opens the modal
func (m *Modal) Render(content Content) {
	m.content = content
	m.Open()
}

// Open shows the modal and emits EventModalOpen
func (m *Modal) Open() {
	m.active = true
	m.events.Emit(events.EventModalOpen, nil)
}

// Close hides the modal, drops its content and emits EventModalClose
func (m *Modal) Close() {
	m.active = false
	m.content = nil
	m.events.Emit(events.EventModalClose, nil)
}

func (m *Modal) Active() bool { return m.active }

// Content returns the hosted view, or nil
func (m *Modal) Content() Content { return m.content }

// Snapshot returns the modal state
func (m *Modal) Snapshot() ModalSnapshot {
	s := ModalSnapshot{Active: m.active}
	if m.content != nil {
		s.View = m.content.ViewName()
		s.Content = m.content.Snapshot()
	}
	return s
}
