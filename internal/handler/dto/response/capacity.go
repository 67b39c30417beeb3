package response

import (
	"envelope-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type CapacityResponse struct {
	PartnerID uuid.UUID `json:"partnerId"`
	Envelope  int64     `json:"envelope"`
	Reserved  int64     `json:"reserved"`
	Remaining int64     `json:"remaining"`
}

type CapacityAuditResponse struct {
	PartnerID   uuid.UUID `json:"partnerId"`
	Envelope    int64     `json:"envelope"`
	Reserved    int64     `json:"reserved"`
	ActiveTotal int64     `json:"activeTotal"`
	ActiveCount int       `json:"activeCount"`
	Drift       int64     `json:"drift"`
	Consistent  bool      `json:"consistent"`
}

func FromCapacityView(v *queries.CapacityView) *CapacityResponse {
	return &CapacityResponse{
		PartnerID: v.PartnerID,
		Envelope:  v.Envelope,
		Reserved:  v.Reserved,
		Remaining: v.Remaining,
	}
}

func FromCapacityAuditView(v *queries.CapacityAuditView) *CapacityAuditResponse {
	return &CapacityAuditResponse{
		PartnerID:   v.PartnerID,
		Envelope:    v.Envelope,
		Reserved:    v.Reserved,
		ActiveTotal: v.ActiveTotal,
		ActiveCount: v.ActiveCount,
		Drift:       v.Drift,
		Consistent:  v.Consistent,
	}
}
