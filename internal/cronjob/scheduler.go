package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/logging"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Warmer precomputes cached data. *service.PhaseService implements it.
type Warmer interface {
	WarmToday(ctx context.Context) error
}

type Scheduler struct {
	cron    *cron.Cron
	warmer  Warmer
	log     *zap.Logger
	timeout time.Duration
}

func NewScheduler(warmer Warmer, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		warmer:  warmer,
		log:     log,
		timeout: 30 * time.Second,
	}
}

// Start registers the warm job on spec (six fields, seconds first) and
// starts the cron loop. An empty spec disables scheduling.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		s.log.Info("snapshot warm job disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(spec, s.runWarm); err != nil {
		return fmt.Errorf("failed to create cron job: %w", err)
	}

	s.log.Info("cron scheduler started", zap.String("spec", spec))
	s.cron.Start()
	return nil
}

// Stop halts the loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runWarm() {
	ctx := logging.WithLogger(context.Background(), s.log.With(zap.String("job", "snapshot_warm")))
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.warmer.WarmToday(ctx); err != nil {
		s.log.Warn("snapshot warm failed", zap.Error(err))
		return
	}
	s.log.Info("snapshot warm completed", zap.Duration("took", time.Since(start)))
}
