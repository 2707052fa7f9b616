package usecase

import (
	"time"

	"github.com/andrevlins/pedidoflow/internal/domain/model"
)

// StepState marks a pipeline step relative to the order's current status.
type StepState string

const (
	StepDone    StepState = "done"
	StepActive  StepState = "active"
	StepPending StepState = "pending"
)

// PipelineStep is one rendered step of the happy-path progress view.
type PipelineStep struct {
	Status model.Status `json:"status"`
	Label  string       `json:"label"`
	Color  string       `json:"color"`
	State  StepState    `json:"state"`
}

// Banner replaces the step sequence for orders outside the happy path.
type Banner struct {
	Status model.Status `json:"status"`
	Label  string       `json:"label"`
	Color  string       `json:"color"`
	Reason string       `json:"reason,omitempty"`
}

// PipelineView is the progress rendering of an order. Either Steps is
// populated with states, or Banner is set for rejected/cancelled orders.
type PipelineView struct {
	Steps  []PipelineStep `json:"steps"`
	Banner *Banner        `json:"banner,omitempty"`
}

// BuildPipeline renders the order's position along model.StatusFlow.
// Statuses before the current index are done, the current one active, later
// ones pending. Statuses not in the flow (index -1) show no progress and a
// terminal banner instead.
func BuildPipeline(order *model.Order) PipelineView {
	current := model.FlowIndex(order.Status)

	steps := make([]PipelineStep, 0, len(model.StatusFlow))
	for i, s := range model.StatusFlow {
		state := StepPending
		switch {
		case current >= 0 && i < current:
			state = StepDone
		case current >= 0 && i == current:
			state = StepActive
		}
		steps = append(steps, PipelineStep{
			Status: s,
			Label:  s.Label(),
			Color:  s.Color(),
			State:  state,
		})
	}

	view := PipelineView{Steps: steps}
	if current == -1 {
		banner := &Banner{
			Status: order.Status,
			Label:  order.Status.Label(),
			Color:  order.Status.Color(),
		}
		if order.Status.Rejected() && order.RejectionReason != nil {
			banner.Reason = *order.RejectionReason
		}
		view.Banner = banner
	}
	return view
}

// TimelineItem is one rendered entry of the order history view.
type TimelineItem struct {
	Status    model.Status `json:"status"`
	Label     string       `json:"label"`
	Color     string       `json:"color"`
	Actor     string       `json:"actor"`
	Note      string       `json:"note,omitempty"`
	ChangedAt time.Time    `json:"changed_at"`
}

// BuildTimeline renders the status history in insertion order, oldest first.
func BuildTimeline(history []model.StatusHistoryEntry) []TimelineItem {
	items := make([]TimelineItem, 0, len(history))
	for _, entry := range history {
		items = append(items, TimelineItem{
			Status:    entry.Status,
			Label:     entry.Status.Label(),
			Color:     entry.Status.Color(),
			Actor:     entry.Actor,
			Note:      entry.Note,
			ChangedAt: entry.ChangedAt,
		})
	}
	return items
}
