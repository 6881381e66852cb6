package transition_status

import (
	transitionStatus "github.com/m04kA/SMC-ReservationService/internal/usecase/transition_status"
)

type StatusRequest struct {
	Status string `json:"status"` // approved | declined | cancelled
}

type BulkActionRequest struct {
	IDs    []int64 `json:"ids"`
	Action string  `json:"action"` // approve | decline | cancel | delete
}

type StatusResponse struct {
	ID             int64  `json:"id"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previousStatus"`
	Changed        bool   `json:"changed"`
}

type BulkItemResponse struct {
	ID      int64  `json:"id"`
	Status  string `json:"status,omitempty"`
	Changed bool   `json:"changed"`
	Error   string `json:"error,omitempty"`
}

type BulkActionResponse struct {
	Action    string             `json:"action"`
	Items     []BulkItemResponse `json:"items"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

func FromUseCaseResponse(resp *transitionStatus.Response) *StatusResponse {
	return &StatusResponse{
		ID:             resp.ID,
		Status:         resp.Status,
		PreviousStatus: resp.PreviousStatus,
		Changed:        resp.Changed,
	}
}

func FromUseCaseBulkResponse(resp *transitionStatus.BulkResponse) *BulkActionResponse {
	result := &BulkActionResponse{
		Action:    resp.Action,
		Items:     make([]BulkItemResponse, 0, len(resp.Items)),
		Succeeded: resp.Succeeded,
		Failed:    resp.Failed,
	}
	for _, item := range resp.Items {
		result.Items = append(result.Items, BulkItemResponse{
			ID:      item.ID,
			Status:  item.Status,
			Changed: item.Changed,
			Error:   item.Error,
		})
	}
	return result
}
