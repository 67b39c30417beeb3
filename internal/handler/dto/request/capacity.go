package request

type ResizeEnvelopeRequest struct {
	Envelope *int64 `json:"envelope" binding:"required"`
}
