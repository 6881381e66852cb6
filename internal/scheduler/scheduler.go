package scheduler

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Config параметры планировщика, нулевые значения заменяются минимальными
type Config struct {
	Interval  time.Duration // период ежедневной задачи
	Workers   int           // число отправителей напоминаний
	QueueSize int
}

// Scheduler запускает ежедневную задачу по таймеру и рассылает напоминания из очереди
type Scheduler struct {
	cfg       Config
	reminders ReminderSender
	queue     chan int64
	logger    Logger
}

// New создает планировщик с очередью напоминаний размера QueueSize
func New(cfg Config, reminders ReminderSender, logger Logger) *Scheduler {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}

	return &Scheduler{
		cfg:       cfg,
		reminders: reminders,
		queue:     make(chan int64, cfg.QueueSize),
		logger:    logger,
	}
}

// ScheduleReminder ставит напоминание в очередь. Не блокирует:
// при заполненной очереди напоминание отбрасывается, возвращается false.
func (s *Scheduler) ScheduleReminder(id int64) bool {
	select {
	case s.queue <- id:
		return true
	default:
		s.logger.Warn("Scheduler: reminder queue is full, reminder for reservation id=%d dropped", id)
		return false
	}
}

// Start блокирует до отмены ctx
func (s *Scheduler) Start(ctx context.Context, job CleanupJob) error {
	s.logger.Info("Scheduler: starting, interval=%s, reminder workers=%d", s.cfg.Interval, s.cfg.Workers)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		s.runJob(ctx, job)

		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				s.runJob(ctx, job)
			}
		}
	})

	for i := 0; i < s.cfg.Workers; i++ {
		eg.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case id := <-s.queue:
					s.sendReminder(ctx, id)
				}
			}
		})
	}

	err := eg.Wait()
	s.logger.Info("Scheduler: stopped")
	return err
}

func (s *Scheduler) runJob(ctx context.Context, job CleanupJob) {
	start := time.Now()
	if _, err := job.Execute(ctx); err != nil {
		s.logger.Error("Scheduler: daily job finished with errors: %v", err)
		return
	}
	s.logger.Info("Scheduler: daily job done in %s", time.Since(start))
}

// sendReminder одна попытка, повторов нет
func (s *Scheduler) sendReminder(ctx context.Context, id int64) {
	sent, err := s.reminders.Execute(ctx, id)
	if err != nil {
		s.logger.Error("Scheduler: reminder for reservation id=%d failed: %v", id, err)
		return
	}
	if !sent {
		s.logger.Info("Scheduler: reminder for reservation id=%d skipped", id)
	}
}
