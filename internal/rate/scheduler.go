package rate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultAggregationInterval = 60 * time.Second

var ErrSchedulerNotRunning = errors.New("scheduler is not running")

type cycleRunner interface {
	Run(ctx context.Context, execID string, knownCodes []string) Summary
}

type Scheduler struct {
	aggregator cycleRunner
	// -----
	mu                  sync.Mutex
	sched               gocron.Scheduler
	job                 gocron.Job
	aggregationInterval time.Duration
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	task := func(jobCtx context.Context) {
		execID := uuid.NewString()
		s.aggregator.Run(jobCtx, execID, nil)
	}

	// Singleton mode keeps cycles from overlapping: a run that comes due while
	// the previous one is still working is rescheduled.
	job, err := scheduler.NewJob(
		gocron.DurationJob(s.aggregationInterval),
		gocron.NewTask(task),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}
	s.mu.Lock()
	s.sched = scheduler
	s.job = job
	s.mu.Unlock()

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// RunNow triggers an out-of-schedule aggregation cycle.
func (s *Scheduler) RunNow() error {
	s.mu.Lock()
	job := s.job
	s.mu.Unlock()
	if job == nil {
		return ErrSchedulerNotRunning
	}
	return job.RunNow()
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.job = nil
	s.mu.Unlock()
	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

func NewScheduler(aggregator cycleRunner, aggregationInterval time.Duration) *Scheduler {
	if aggregationInterval <= 0 {
		aggregationInterval = defaultAggregationInterval
	}
	return &Scheduler{aggregator: aggregator, aggregationInterval: aggregationInterval}
}
