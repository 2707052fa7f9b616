package dto

// TransitionRequest describes a requested status change.
type TransitionRequest struct {
	ToStatus        string `json:"to_status"`
	Note            string `json:"note"`
	ReceiptURL      string `json:"receipt_url"`
	RejectionReason string `json:"rejection_reason"`
}

// ReleaseRequest is the optional payload of the public QR release action.
type ReleaseRequest struct {
	ReleasedBy string `json:"released_by"`
}
