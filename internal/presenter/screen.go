package presenter

import (
	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/view"
)

// Screen is everything the user currently sees
type Screen struct {
	Step  domain.CheckoutStep `json:"step"`
	Stage domain.OrderStage   `json:"stage"`
	Page  view.PageSnapshot   `json:"page"`
	Modal view.ModalSnapshot  `json:"modal"`
}

// Screen snapshots the page and the modal
func (p *Presenter) Screen() Screen {
	return Screen{
		Step:  p.step,
		Stage: p.state.Stage(),
		Page:  p.views.Page.Snapshot(),
		Modal: p.views.Modal.Snapshot(),
	}
}
