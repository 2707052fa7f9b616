package model

// Status describes where an order sits in the sales-to-production workflow.
type Status string

const (
	StatusDraft             Status = "rascunho"
	StatusAwaitingFinance   Status = "aguardando_financeiro"
	StatusFinanceApproved   Status = "aprovado_financeiro"
	StatusFinanceRejected   Status = "rejeitado_financeiro"
	StatusAwaitingManager   Status = "aguardando_gestor"
	StatusManagerApproved   Status = "aprovado_gestor"
	StatusManagerRejected   Status = "rejeitado_gestor"
	StatusAwaitingProduction Status = "aguardando_producao"
	StatusInProduction      Status = "em_producao"
	StatusProductionDone    Status = "producao_finalizada"
	StatusReleased          Status = "produto_liberado"
	StatusCancelled         Status = "cancelado"
)

// PaymentStatusPaid is set once the financial role approves an order.
const PaymentStatusPaid = "pago"

// StatusInfo carries display metadata for a status.
type StatusInfo struct {
	Label string
	Color string
}

var statusTable = map[Status]StatusInfo{
	StatusDraft:              {Label: "Rascunho", Color: "gray"},
	StatusAwaitingFinance:    {Label: "Aguardando Financeiro", Color: "yellow"},
	StatusFinanceApproved:    {Label: "Aprovado pelo Financeiro", Color: "blue"},
	StatusFinanceRejected:    {Label: "Rejeitado pelo Financeiro", Color: "red"},
	StatusAwaitingManager:    {Label: "Aguardando Gestor", Color: "yellow"},
	StatusManagerApproved:    {Label: "Aprovado pelo Gestor", Color: "blue"},
	StatusManagerRejected:    {Label: "Rejeitado pelo Gestor", Color: "red"},
	StatusAwaitingProduction: {Label: "Aguardando Produção", Color: "orange"},
	StatusInProduction:       {Label: "Em Produção", Color: "purple"},
	StatusProductionDone:     {Label: "Produção Finalizada", Color: "teal"},
	StatusReleased:           {Label: "Produto Liberado", Color: "green"},
	StatusCancelled:          {Label: "Cancelado", Color: "gray"},
}

// StatusFlow is the nominal happy path, in order. It drives the progress
// pipeline rendering only; legality of transitions is decided by the rule
// table in the usecase layer.
var StatusFlow = []Status{
	StatusDraft,
	StatusAwaitingFinance,
	StatusFinanceApproved,
	StatusAwaitingManager,
	StatusManagerApproved,
	StatusAwaitingProduction,
	StatusInProduction,
	StatusProductionDone,
	StatusReleased,
}

// Valid reports whether the status is one of the enumerated values.
func (s Status) Valid() bool {
	_, ok := statusTable[s]
	return ok
}

// Label returns the human readable label for the status.
func (s Status) Label() string {
	return statusTable[s].Label
}

// Color returns the display color associated with the status.
func (s Status) Color() string {
	return statusTable[s].Color
}

// Terminal reports whether no further transition leaves the status.
func (s Status) Terminal() bool {
	switch s {
	case StatusFinanceRejected, StatusManagerRejected, StatusReleased, StatusCancelled:
		return true
	}
	return false
}

// Rejected reports whether the status is one of the rejection dead-ends.
func (s Status) Rejected() bool {
	return s == StatusFinanceRejected || s == StatusManagerRejected
}

// FlowIndex returns the position of the status in StatusFlow, or -1 for
// statuses outside the happy path (rejections, cancellation).
func FlowIndex(s Status) int {
	for i, fs := range StatusFlow {
		if fs == s {
			return i
		}
	}
	return -1
}

// Role identifies which part of the workflow a user acts in.
type Role string

const (
	RoleSeller     Role = "seller"
	RoleFinancial  Role = "financial"
	RoleManager    Role = "manager"
	RoleProduction Role = "production"

	// RolePublic is the pseudo-role of the unauthenticated QR release page.
	// It is never stored on a user record.
	RolePublic Role = "public"
)

// Valid reports whether the role may be assigned to a user account.
func (r Role) Valid() bool {
	switch r {
	case RoleSeller, RoleFinancial, RoleManager, RoleProduction:
		return true
	}
	return false
}
