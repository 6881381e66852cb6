package templates

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон не найден
	ErrTemplateNotFound = errors.New("templates: template not found")

	// ErrTemplateExists возвращается при создании шаблона с занятым именем
	ErrTemplateExists = errors.New("templates: template already exists")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("templates: internal error")
)
