package models

// Request statuses reported by the court backend.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

// CaseRequest is a pending case-access request.
type CaseRequest struct {
	// ID uniquely identifies the request.
	ID string `json:"id"`
	// CaseID is the case the requester wants access to.
	CaseID string `json:"caseId"`
	// LawyerAddress is the requester account address.
	LawyerAddress string `json:"lawyerAddress"`
	// LawyerUniqueID is an optional requester identifier.
	LawyerUniqueID string `json:"lawyerUniqueId,omitempty"`
	// RequestedAt is the request time in epoch milliseconds.
	RequestedAt int64 `json:"requestedAt"`
	// Status is PENDING or APPROVED.
	Status string `json:"status"`
	// LawyerName is an optional display name.
	LawyerName string `json:"lawyerName,omitempty"`
	// LawyerEmail is an optional display email.
	LawyerEmail string `json:"lawyerEmail,omitempty"`
}

