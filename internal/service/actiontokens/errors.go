package actiontokens

import "errors"

var (
	// ErrUnauthorized токен отсутствует, подделан, просрочен, выдан на другое действие или уже использован
	ErrUnauthorized = errors.New("actiontokens: invalid authorization token")

	// ErrInvalidAction неизвестное действие
	ErrInvalidAction = errors.New("actiontokens: invalid action")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("actiontokens: internal error")
)
