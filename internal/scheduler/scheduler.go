package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// jobTimeout ограничивает длительность одного запуска задачи
const jobTimeout = time.Minute

// Job периодическая задача
type Job func(ctx context.Context) error

// Scheduler запускает задачи по cron-расписанию (с секундами)
type Scheduler struct {
	cron   *cron.Cron
	logger *logrus.Logger

	// base родительский контекст задач, отменяется при остановке Run
	base   context.Context
	cancel context.CancelFunc
}

func New(logger *logrus.Logger) *Scheduler {
	base, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
		base:   base,
		cancel: cancel,
	}
}

// Add регистрирует задачу name с расписанием spec
func (s *Scheduler) Add(spec, name string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(s.base, jobTimeout)
		defer cancel()

		log := s.logger.WithField("job", name)
		log.Debug("Running scheduled job")
		started := time.Now()
		if err := job(ctx); err != nil {
			log.WithError(err).Error("Scheduled job failed")
			return
		}
		log.WithField("duration", time.Since(started).String()).Info("Scheduled job completed")
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", name, err)
	}
	return nil
}

// Len количество зарегистрированных задач
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Run запускает планировщик и блокируется до отмены ctx.
// После отмены контексты выполняющихся задач отменяются, Run ждет их завершения.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.logger.WithField("jobs", s.Len()).Info("Scheduler started")

	<-ctx.Done()

	s.cancel()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Scheduler stopped")
	return nil
}
