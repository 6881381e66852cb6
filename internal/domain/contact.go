package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// ContactInput контактные поля формы
type ContactInput struct {
	Name            string
	Email           string
	Phone           string
	SpecialRequests string
}

// ValidateContact проверяет имя, email и пожелания гостя
func ValidateContact(in ContactInput) []string {
	var messages []string

	if strings.TrimSpace(in.Name) == "" {
		messages = append(messages, RequiredMessage("name"))
	}

	if email := strings.TrimSpace(in.Email); email == "" {
		messages = append(messages, RequiredMessage("email"))
	} else if !IsValidEmail(email) {
		messages = append(messages, "Email is not valid")
	}

	if utf8.RuneCountInString(in.SpecialRequests) > MaxSpecialRequestsLength {
		messages = append(messages, fmt.Sprintf("Special requests cannot exceed %d characters", MaxSpecialRequestsLength))
	}

	return messages
}

// IsValidEmail true для голого адреса вида user@host, без имени и угловых скобок
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(addr.Address, "@")
}
