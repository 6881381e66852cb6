package domain

import (
	"errors"
	"strings"
)

// ErrValidation общий признак ошибки валидации
var ErrValidation = errors.New("validation failed")

// ValidationError содержит все найденные ошибки, а не только первую
type ValidationError struct {
	Messages []string
}

// NewValidationError возвращает nil, если сообщений нет
func NewValidationError(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationMessages достает сообщения из цепочки ошибок
func ValidationMessages(err error) []string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Messages
	}
	return nil
}
