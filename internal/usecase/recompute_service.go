package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Integrum-Global/kronos/internal/domain/account"
	"github.com/Integrum-Global/kronos/internal/domain/risk"
	"github.com/Integrum-Global/kronos/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
)

type RecomputeInput struct {
	MaxWorkers int
	// DryRun skips writes and reports what would change.
	DryRun bool
}

type RecomputeResult struct {
	UserCount       int                   `json:"user_count"`
	RecomputedCount int                   `json:"recomputed_count"`
	UnchangedCount  int                   `json:"unchanged_count"`
	SkippedCount    int                   `json:"skipped_count"`
	FailedCount     int                   `json:"failed_count"`
	WorkerCount     int                   `json:"worker_count"`
	Users           []RecomputeUserResult `json:"users"`
}

type RecomputeUserResult struct {
	UserID     string `json:"user_id"`
	Status     string `json:"status"`
	Level      string `json:"level,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	recomputeStatusRecomputed = "recomputed"
	recomputeStatusUnchanged  = "unchanged"
	recomputeStatusSkipped    = "skipped"
	recomputeStatusFailed     = "failed"
)

// RecomputeService re-derives stored risk profiles from their persisted
// answers. It exists for tier or scoring table changes: stored profiles are
// snapshots, so a rule change only reaches existing users through this job.
type RecomputeService struct {
	stateRepo account.StateRepository
	logger    *logging.Logger
}

func NewRecomputeService(stateRepo account.StateRepository, logger *logging.Logger) *RecomputeService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RecomputeService{
		stateRepo: stateRepo,
		logger:    logger,
	}
}

func (s *RecomputeService) Recompute(ctx context.Context, input RecomputeInput) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.Recompute")
	defer span.End()

	userIDs, err := s.stateRepo.ListUserIDs(ctx)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("list user ids: %w", err)
	}

	workerCount := normalizeRecomputeWorkerCount(input.MaxWorkers, len(userIDs))
	result := RecomputeResult{
		UserCount:   len(userIDs),
		WorkerCount: workerCount,
		Users:       make([]RecomputeUserResult, 0, len(userIDs)),
	}
	if len(userIDs) == 0 {
		return result, nil
	}

	results := make(chan RecomputeUserResult, len(userIDs))

	var recomputedCount atomic.Int32
	var unchangedCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, userID := range userIDs {
		userID := userID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.recomputeUser(ctx, userID, input.DryRun)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case recomputeStatusRecomputed:
				recomputedCount.Add(1)
			case recomputeStatusUnchanged:
				unchangedCount.Add(1)
			case recomputeStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit user to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Users = append(result.Users, row)
	}

	sort.SliceStable(result.Users, func(i, j int) bool {
		return result.Users[i].UserID < result.Users[j].UserID
	})

	result.RecomputedCount = int(recomputedCount.Load())
	result.UnchangedCount = int(unchangedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "risk profile recompute finished",
		"user_count", result.UserCount,
		"recomputed", result.RecomputedCount,
		"unchanged", result.UnchangedCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *RecomputeService) recomputeUser(ctx context.Context, userID string, dryRun bool) RecomputeUserResult {
	row := RecomputeUserResult{UserID: userID}

	state, exists, err := s.stateRepo.Get(ctx, userID)
	if err != nil {
		row.Status = recomputeStatusFailed
		row.Message = err.Error()
		return row
	}
	if !exists || state.Profile.RiskProfile == nil {
		row.Status = recomputeStatusSkipped
		row.Message = "no stored risk profile"
		return row
	}

	stored := *state.Profile.RiskProfile
	if len(stored.Answers) == 0 {
		row.Status = recomputeStatusSkipped
		row.Message = "stored profile has no answers"
		return row
	}

	fresh, err := risk.Evaluate(stored.Answers)
	if err != nil {
		row.Status = recomputeStatusFailed
		row.Message = fmt.Sprintf("evaluate answers: %v", err)
		return row
	}

	row.Level = string(fresh.Level)
	if fresh.Level == stored.Level && fresh.Score == stored.Score && fresh.Allocation == stored.Allocation {
		row.Status = recomputeStatusUnchanged
		return row
	}

	if !dryRun {
		next := state.WithRiskProfile(fresh)
		if err := s.stateRepo.Save(ctx, userID, next); err != nil {
			row.Status = recomputeStatusFailed
			row.Message = fmt.Sprintf("save state: %v", err)
			return row
		}
	}

	row.Status = recomputeStatusRecomputed
	return row
}

func normalizeRecomputeWorkerCount(value int, userCount int) int {
	if userCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 4
	}
	if value > 16 {
		value = 16
	}
	if value > userCount {
		value = userCount
	}
	return value
}
