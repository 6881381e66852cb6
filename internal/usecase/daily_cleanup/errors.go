package daily_cleanup

import "errors"

var (
	// ErrReminders возвращается, когда не удалось выбрать брони для напоминаний
	ErrReminders = errors.New("daily_cleanup: failed to schedule reminders")

	// ErrCleanup возвращается, когда не удалось удалить старые отмененные брони
	ErrCleanup = errors.New("daily_cleanup: failed to delete cancelled reservations")

	// ErrTokens возвращается, когда не удалось удалить истекшие токены
	ErrTokens = errors.New("daily_cleanup: failed to purge expired action tokens")
)
