package scheduler

import (
	"github.com/robfig/cron/v3"

	"CotLens/pkg/logger"
)

// Job is a unit of scheduled background work.
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs on cron schedules.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log,
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop blocks until running jobs finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

// AddJob registers a job. Schedules use the standard 5-field cron syntax or
// descriptors like "@hourly" and "@every 6h".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := job.Run(); err != nil {
			s.log.Error("job failed", logger.String("job", job.Name()), logger.Error(err))
			return
		}
		s.log.Debug("job completed", logger.String("job", job.Name()))
	})
	if err != nil {
		return err
	}

	s.log.Info("job registered",
		logger.String("job", job.Name()),
		logger.String("schedule", schedule))
	return nil
}

// RunNow executes a job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	s.log.Info("running job now", logger.String("job", job.Name()))
	return job.Run()
}
