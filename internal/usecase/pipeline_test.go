package usecase

import (
	"testing"
	"time"

	"github.com/andrevlins/pedidoflow/internal/domain/model"
)

func TestBuildPipelineMidFlow(t *testing.T) {
	order := &model.Order{Status: model.StatusAwaitingManager}
	view := BuildPipeline(order)

	if view.Banner != nil {
		t.Fatal("did not expect banner for in-flow status")
	}
	if len(view.Steps) != len(model.StatusFlow) {
		t.Fatalf("unexpected step count %d", len(view.Steps))
	}

	current := model.FlowIndex(order.Status)
	for i, step := range view.Steps {
		switch {
		case i < current:
			if step.State != StepDone {
				t.Fatalf("step %d expected done, got %s", i, step.State)
			}
		case i == current:
			if step.State != StepActive {
				t.Fatalf("step %d expected active, got %s", i, step.State)
			}
		default:
			if step.State != StepPending {
				t.Fatalf("step %d expected pending, got %s", i, step.State)
			}
		}
	}
}

func TestBuildPipelineDraftIsFirstActive(t *testing.T) {
	view := BuildPipeline(&model.Order{Status: model.StatusDraft})
	if view.Steps[0].State != StepActive {
		t.Fatalf("expected first step active, got %s", view.Steps[0].State)
	}
	for _, step := range view.Steps[1:] {
		if step.State != StepPending {
			t.Fatalf("expected pending, got %s", step.State)
		}
	}
}

func TestBuildPipelineRejectionBanner(t *testing.T) {
	reason := "sem comprovante"
	order := &model.Order{Status: model.StatusFinanceRejected, RejectionReason: &reason}
	view := BuildPipeline(order)

	if view.Banner == nil {
		t.Fatal("expected banner for rejected order")
	}
	if view.Banner.Reason != reason {
		t.Fatalf("unexpected banner reason %q", view.Banner.Reason)
	}
	// No step may show progress for a status outside the flow.
	for _, step := range view.Steps {
		if step.State != StepPending {
			t.Fatalf("expected all steps pending, got %s for %s", step.State, step.Status)
		}
	}
}

func TestBuildPipelineCancelledBanner(t *testing.T) {
	view := BuildPipeline(&model.Order{Status: model.StatusCancelled})
	if view.Banner == nil {
		t.Fatal("expected banner for cancelled order")
	}
	if view.Banner.Reason != "" {
		t.Fatalf("cancellation carries no reason, got %q", view.Banner.Reason)
	}
}

func TestBuildTimelineKeepsInsertionOrder(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	history := []model.StatusHistoryEntry{
		{Status: model.StatusDraft, Actor: "Ana", ChangedAt: base},
		{Status: model.StatusAwaitingFinance, Actor: "Ana", Note: "enviado", ChangedAt: base.Add(time.Minute)},
		{Status: model.StatusFinanceApproved, Actor: "Carla", ChangedAt: base.Add(2 * time.Minute)},
	}

	items := BuildTimeline(history)
	if len(items) != 3 {
		t.Fatalf("unexpected item count %d", len(items))
	}
	for i, item := range items {
		if item.Status != history[i].Status {
			t.Fatalf("item %d out of order: %s", i, item.Status)
		}
	}
	if items[1].Note != "enviado" {
		t.Fatalf("unexpected note %q", items[1].Note)
	}
	if items[2].Label != model.StatusFinanceApproved.Label() {
		t.Fatalf("unexpected label %q", items[2].Label)
	}
}
