package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/andrevlins/pedidoflow/internal/domain/errors"
	"github.com/andrevlins/pedidoflow/internal/domain/model"
	"github.com/andrevlins/pedidoflow/internal/domain/repository"
)

// SystemActor is recorded when no authenticated user triggered a transition,
// e.g. the public QR release page.
const SystemActor = "Sistema"

// Rule is one edge of the workflow: which role may move an order from one
// status to another. The table below is the single authority consulted for
// every transition, server side, regardless of which page fired it.
type Rule struct {
	Role model.Role
	From model.Status
	To   model.Status

	// RequiresReason forces a non-empty rejection reason.
	RequiresReason bool
}

var rules = []Rule{
	// Seller submits a draft for financial review, or abandons it.
	{Role: model.RoleSeller, From: model.StatusDraft, To: model.StatusAwaitingFinance},
	{Role: model.RoleSeller, From: model.StatusDraft, To: model.StatusCancelled},

	// Financial review. Approval marks the order paid. The direct route to
	// production skips the manager step; it is kept as two explicit rules so
	// dropping the shortcut later is a table edit, not a logic change.
	{Role: model.RoleFinancial, From: model.StatusAwaitingFinance, To: model.StatusFinanceApproved},
	{Role: model.RoleFinancial, From: model.StatusAwaitingFinance, To: model.StatusFinanceRejected, RequiresReason: true},
	{Role: model.RoleFinancial, From: model.StatusAwaitingFinance, To: model.StatusAwaitingProduction},
	{Role: model.RoleFinancial, From: model.StatusFinanceApproved, To: model.StatusAwaitingManager},
	{Role: model.RoleFinancial, From: model.StatusFinanceApproved, To: model.StatusAwaitingProduction},

	// Manager review.
	{Role: model.RoleManager, From: model.StatusAwaitingManager, To: model.StatusManagerApproved},
	{Role: model.RoleManager, From: model.StatusAwaitingManager, To: model.StatusManagerRejected, RequiresReason: true},
	{Role: model.RoleManager, From: model.StatusManagerApproved, To: model.StatusAwaitingProduction},

	// Production floor.
	{Role: model.RoleProduction, From: model.StatusAwaitingProduction, To: model.StatusInProduction},
	{Role: model.RoleProduction, From: model.StatusInProduction, To: model.StatusProductionDone},

	// Anyone scanning the QR code may release the finished product.
	{Role: model.RolePublic, From: model.StatusProductionDone, To: model.StatusReleased},
}

// AllowedTargets lists the statuses a role may move an order to from the
// given status. Used by list/detail responses so dashboards render exactly
// the buttons the server would accept.
func AllowedTargets(role model.Role, from model.Status) []model.Status {
	var targets []model.Status
	for _, r := range rules {
		if r.Role == role && r.From == from {
			targets = append(targets, r.To)
		}
	}
	return targets
}

func findRule(role model.Role, from, to model.Status) (Rule, error) {
	anyRole := false
	for _, r := range rules {
		if r.From == from && r.To == to {
			anyRole = true
			if r.Role == role {
				return r, nil
			}
		}
	}
	if anyRole {
		return Rule{}, domainErrors.ErrForbiddenTransition
	}
	return Rule{}, domainErrors.ErrInvalidTransition
}

// Actor identifies who is triggering a transition.
type Actor struct {
	UserID int64
	Name   string
	Role   model.Role
}

// TransitionInput carries the target status and the optional side-channel
// values a transition may consume.
type TransitionInput struct {
	To              model.Status
	Note            string
	ReceiptURL      string
	RejectionReason string
}

// TransitionUseCase validates and applies status transitions.
type TransitionUseCase struct {
	orders        repository.OrderRepository
	publicBaseURL string
	now           func() time.Time
}

// NewTransitionUseCase constructs TransitionUseCase. publicBaseURL is the
// prefix of generated QR release links.
func NewTransitionUseCase(orders repository.OrderRepository, publicBaseURL string) *TransitionUseCase {
	return &TransitionUseCase{
		orders:        orders,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

// Apply moves the order to input.To on behalf of actor. The rule table
// decides legality; the repository applies the change and the history entry
// in one transaction, conditional on the status not having moved meanwhile.
func (u *TransitionUseCase) Apply(ctx context.Context, actor Actor, orderID int64, input TransitionInput) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return u.apply(ctx, actor, order, input)
}

// Release handles the public QR release page: anyone scanning the code may
// move a finished order to produto_liberado. releasedBy is free text from
// the unauthenticated viewer and defaults to SystemActor.
func (u *TransitionUseCase) Release(ctx context.Context, publicID uuid.UUID, releasedBy string) (*model.Order, error) {
	order, err := u.orders.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	releasedBy = strings.TrimSpace(releasedBy)
	if releasedBy == "" {
		releasedBy = SystemActor
	}

	actor := Actor{Name: releasedBy, Role: model.RolePublic}
	return u.apply(ctx, actor, order, TransitionInput{To: model.StatusReleased})
}

func (u *TransitionUseCase) apply(ctx context.Context, actor Actor, order *model.Order, input TransitionInput) (*model.Order, error) {
	if !input.To.Valid() {
		return nil, domainErrors.ErrInvalidTransition
	}

	rule, err := findRule(actor.Role, order.Status, input.To)
	if err != nil {
		return nil, err
	}

	if rule.RequiresReason && strings.TrimSpace(input.RejectionReason) == "" {
		return nil, domainErrors.ErrRejectionReasonRequired
	}

	actorName := strings.TrimSpace(actor.Name)
	if actorName == "" {
		actorName = SystemActor
	}

	patch := u.buildPatch(order, actor, rule, input)
	return u.orders.ApplyTransition(ctx, order.ID, order.Status, input.To, patch, actorName, strings.TrimSpace(input.Note))
}

func (u *TransitionUseCase) buildPatch(order *model.Order, actor Actor, rule Rule, input TransitionInput) model.TransitionPatch {
	var patch model.TransitionPatch
	now := u.now()

	switch rule.To {
	case model.StatusAwaitingFinance:
		if receipt := strings.TrimSpace(input.ReceiptURL); receipt != "" {
			patch.ReceiptURL = &receipt
		}
	case model.StatusFinanceApproved:
		paid := model.PaymentStatusPaid
		patch.PaymentStatus = &paid
	case model.StatusAwaitingProduction:
		// The combined approve-and-skip route still marks the order paid.
		if rule.From == model.StatusAwaitingFinance {
			paid := model.PaymentStatusPaid
			patch.PaymentStatus = &paid
		}
	case model.StatusFinanceRejected, model.StatusManagerRejected:
		reason := strings.TrimSpace(input.RejectionReason)
		patch.RejectionReason = &reason
	case model.StatusInProduction:
		patch.ProductionStartedAt = &now
	case model.StatusProductionDone:
		patch.ProductionFinishedAt = &now
		qr := u.QRLink(order.PublicID)
		patch.QRCode = &qr
	case model.StatusReleased:
		patch.ReleasedAt = &now
		releasedBy := strings.TrimSpace(actor.Name)
		if releasedBy == "" {
			releasedBy = SystemActor
		}
		patch.ReleasedBy = &releasedBy
	}

	return patch
}

// QRLink builds the public release URL embedded in the QR code.
func (u *TransitionUseCase) QRLink(publicID uuid.UUID) string {
	return fmt.Sprintf("%s/qr/%s", u.publicBaseURL, publicID)
}
