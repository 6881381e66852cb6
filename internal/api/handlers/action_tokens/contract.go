package action_tokens

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/actiontokens"
)

type TokenIssuer interface {
	IssueAction(action domain.AdminAction, reservationID int64) (*actiontokens.IssuedToken, error)
	IssueBulk(action domain.AdminAction) (*actiontokens.IssuedToken, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
