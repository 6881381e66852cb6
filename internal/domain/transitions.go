package domain

// Transition допустимый переход статуса
type Transition struct {
	From ReservationStatus
	To   ReservationStatus
}

// transitions таблица переходов. declined и cancelled конечные.
var transitions = []Transition{
	{From: StatusPending, To: StatusApproved},
	{From: StatusPending, To: StatusDeclined},
	{From: StatusPending, To: StatusCancelled},
	{From: StatusApproved, To: StatusCancelled},
}

// CanTransition проверяет переход from -> to по таблице
func CanTransition(from, to ReservationStatus) bool {
	for _, t := range transitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}

// AdminAction действие администратора, на которое выдается токен
type AdminAction string

const (
	ActionApprove AdminAction = "approve"
	ActionDecline AdminAction = "decline"
	ActionCancel  AdminAction = "cancel"
	ActionDelete  AdminAction = "delete"
	ActionEdit    AdminAction = "edit"
)

// IsValid проверяет, что действие известно
func (a AdminAction) IsValid() bool {
	switch a {
	case ActionApprove, ActionDecline, ActionCancel, ActionDelete, ActionEdit:
		return true
	}
	return false
}

// ActionForStatus действие, которое переводит бронь в статус
func ActionForStatus(status ReservationStatus) (AdminAction, bool) {
	switch status {
	case StatusApproved:
		return ActionApprove, true
	case StatusDeclined:
		return ActionDecline, true
	case StatusCancelled:
		return ActionCancel, true
	}
	return "", false
}

// StatusForAction обратное отображение для bulk-действий
func StatusForAction(action AdminAction) (ReservationStatus, bool) {
	switch action {
	case ActionApprove:
		return StatusApproved, true
	case ActionDecline:
		return StatusDeclined, true
	case ActionCancel:
		return StatusCancelled, true
	}
	return "", false
}
