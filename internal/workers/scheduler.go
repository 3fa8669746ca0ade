package workers

import (
	"context"
	"sync"
	"time"

	"caredesk/internal/logger"
)

type DailySchedule struct {
	Hour   int
	Minute int
}

type Scheduler struct {
	loc *time.Location
	log logger.Logger
	wg  sync.WaitGroup
}

func NewScheduler(loc *time.Location, log logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		loc: loc,
		log: log,
	}
}

// Wait blocks until every scheduled worker has returned after its context
// was canceled.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) RunByDuration(ctx context.Context, dur time.Duration, worker Worker) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(dur)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.run(ctx, worker)
			}
		}
	}()
}

func (s *Scheduler) RunDaily(ctx context.Context, schedule DailySchedule, worker Worker) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			timer := time.NewTimer(time.Until(s.next(time.Now(), schedule)))

			select {
			case <-ctx.Done():
				timer.Stop()
				s.log.Debug("daily worker canceled", "name", worker.Name())
				return
			case <-timer.C:
				s.run(ctx, worker)
			}
		}
	}()
}

func (s *Scheduler) next(from time.Time, schedule DailySchedule) time.Time {
	now := from.In(s.loc)

	next := time.Date(
		now.Year(),
		now.Month(),
		now.Day(),
		schedule.Hour,
		schedule.Minute,
		0,
		0,
		s.loc,
	)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}

func (s *Scheduler) run(ctx context.Context, worker Worker) {
	start := time.Now()

	if err := worker.Run(ctx); err != nil {
		s.log.Error("worker failed", "name", worker.Name(), "error", err)
	}

	s.log.Debug("worker finished", "name", worker.Name(), "time", time.Since(start))
}
