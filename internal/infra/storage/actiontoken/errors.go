package actiontoken

import "errors"

var (
	// ErrAlreadyUsed возвращается при повторном использовании одноразового токена
	ErrAlreadyUsed = errors.New("actiontoken.repository: token already used")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("actiontoken.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("actiontoken.repository: failed to execute query")
)
