package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goalline/internal/config"
	"goalline/internal/engine"
)

var firstNames = []string{
	"Ade", "Bruno", "Casper", "Dario", "Elias", "Felix", "Gabriel", "Hugo",
	"Ivan", "Jonas", "Kylian", "Luca", "Mateo", "Nico", "Oscar", "Pablo",
	"Rafael", "Sami", "Theo", "Victor",
}

var lastNames = []string{
	"Almeida", "Bergström", "Costa", "Dubois", "Eriksen", "Ferreira",
	"Gonzalez", "Hoffmann", "Ibarra", "Jansen", "Kovac", "Larsson",
	"Moreau", "Nakamura", "Okafor", "Petrov", "Rossi", "Silva",
	"Tanaka", "Vidal",
}

var positions = []string{"striker", "midfielder", "defender", "goalkeeper"}

type batchStats struct {
	finished   int
	seasons    int
	peakOvr    int
	trophies   int
	legends    int
	earnings   int64
	bestPeak   int
	bestPlayer string
}

// runBatch plays n full careers on autopilot and returns the aggregates.
func runBatch(ctx context.Context, logger *slog.Logger, svc *engine.Service, r *rand.Rand, n int) batchStats {
	var stats batchStats
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			return stats
		}
		academies := svc.Academies(1)
		if len(academies) == 0 {
			continue
		}
		name := fmt.Sprintf("%s %s", firstNames[r.Intn(len(firstNames))], lastNames[r.Intn(len(lastNames))])
		id, _, err := svc.StartCareer(engine.StartCareerInput{
			Name:      name,
			Position:  positions[r.Intn(len(positions))],
			AcademyID: academies[0].ID,
		})
		if err != nil {
			logger.Error("career creation failed", "err", err)
			continue
		}

		var ret *engine.RetirementSummary
		for seasons := 0; seasons < 60 && ret == nil; seasons++ {
			eff, err := svc.AdvanceSeason(id)
			if err != nil {
				logger.Error("season advance failed", "career", name, "err", err)
				break
			}
			ret = eff.Retirement
		}
		if ret == nil {
			logger.Warn("career never retired", "career", name)
			svc.CloseCareer(id)
			continue
		}

		stats.finished++
		stats.seasons += ret.SeasonsPlayed
		stats.peakOvr += ret.PeakOvr
		stats.trophies += ret.TrophyCount
		stats.earnings += ret.Earnings
		if ret.Rating >= 5 {
			stats.legends++
		}
		if ret.PeakOvr > stats.bestPeak {
			stats.bestPeak = ret.PeakOvr
			stats.bestPlayer = ret.Name
		}
		svc.CloseCareer(id)
	}
	return stats
}

func logBatch(logger *slog.Logger, stats batchStats, took time.Duration) {
	if stats.finished == 0 {
		logger.Warn("batch finished no careers")
		return
	}
	logger.Info("simulation batch complete",
		"careers", stats.finished,
		"avg_seasons", float64(stats.seasons)/float64(stats.finished),
		"avg_peak_ovr", float64(stats.peakOvr)/float64(stats.finished),
		"total_trophies", stats.trophies,
		"legends", stats.legends,
		"total_earnings", stats.earnings,
		"best_peak", stats.bestPeak,
		"best_player", stats.bestPlayer,
		"took", took.String(),
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadSimFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	svc := engine.NewServiceSeeded(logger, seed)
	r := rand.New(rand.NewSource(seed + 1))

	if cfg.RunOnce {
		start := time.Now()
		logBatch(logger, runBatch(ctx, logger, svc, r, cfg.Careers), time.Since(start))
		return
	}

	ticker := time.NewTicker(cfg.RunEvery)
	defer ticker.Stop()

	logger.Info("simulator started", "careers_per_batch", cfg.Careers, "run_every", cfg.RunEvery.String(), "seed", seed)
	for {
		select {
		case <-ctx.Done():
			logger.Info("simulator shutdown")
			return
		case <-ticker.C:
			start := time.Now()
			logBatch(logger, runBatch(ctx, logger, svc, r, cfg.Careers), time.Since(start))
		}
	}
}
