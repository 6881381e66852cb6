package action_tokens

import "time"

type IssueRequest struct {
	Action string `json:"action"` // approve | decline | cancel | delete | edit
}

type TokenResponse struct {
	Action        string    `json:"action"`
	ReservationID int64     `json:"reservationId,omitempty"`
	Token         string    `json:"token"`
	ExpiresAt     time.Time `json:"expiresAt"`
}
