// Wayfarer - Travel Destination Ranking and Budget Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package services

import (
	"context"
	"time"

	"github.com/tomtom215/wayfarer/internal/logging"
)

// TrainingManager runs one full training pass. Satisfied by the API
// handler, which also swaps the freshly trained models in.
type TrainingManager interface {
	Train(ctx context.Context, seed int64) error
}

// TrainingServiceConfig configures the retraining schedule.
type TrainingServiceConfig struct {
	// TrainOnStartup runs a training pass as soon as the service
	// starts, before the first interval elapses.
	TrainOnStartup bool

	// Interval is the time between periodic retraining runs. Zero or
	// negative disables periodic retraining.
	Interval time.Duration

	// Seed seeds the synthetic training data generators.
	Seed int64
}

// TrainingService retrains the models on a schedule. A failed run is
// logged and retried at the next tick; it never restarts the service.
type TrainingService struct {
	manager TrainingManager
	config  TrainingServiceConfig
	name    string
}

// NewTrainingService creates the training scheduler wrapper.
func NewTrainingService(manager TrainingManager, config TrainingServiceConfig) *TrainingService {
	return &TrainingService{
		manager: manager,
		config:  config,
		name:    "training-scheduler",
	}
}

// Serve implements suture.Service.
func (s *TrainingService) Serve(ctx context.Context) error {
	if s.config.TrainOnStartup {
		s.run(ctx)
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *TrainingService) run(ctx context.Context) {
	start := time.Now()
	if err := s.manager.Train(ctx, s.config.Seed); err != nil {
		logging.Error().Err(err).Msg("Scheduled training run failed")
		return
	}
	logging.Info().
		Dur("duration", time.Since(start)).
		Int64("seed", s.config.Seed).
		Msg("Scheduled training run completed")
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *TrainingService) String() string {
	return s.name
}
