package daily_cleanup

// Result итоги ежедневного обслуживания
type Result struct {
	RemindersScheduled  int
	RemindersDropped    int // очередь напоминаний была заполнена
	ReservationsDeleted int64
	TokensPurged        int64
}
