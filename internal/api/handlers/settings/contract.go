package settings

import "github.com/m04kA/SMC-ReservationService/internal/service/actiontokens"

type FormTokenIssuer interface {
	IssueFormToken() (*actiontokens.IssuedToken, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
