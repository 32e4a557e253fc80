// Package concurrent runs independent read queries side by side.
package concurrent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"gameclub/models"
)

// ClubStats holds the home page counters.
type ClubStats struct {
	Games            int64
	Players          int64
	Venues           int64
	UpcomingSessions int64
	CompletedPlays   int64
	Reviews          int64
	AverageRating    float64
}

// CalculateClubStats runs every count in its own goroutine and waits for all of them.
// The first failing query's error is returned.
func CalculateClubStats(ctx context.Context, conn *gorm.DB, now time.Time) (*ClubStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stats := &ClubStats{}
	q := conn.WithContext(ctx)

	var wg sync.WaitGroup
	errChan := make(chan error, 7)

	count := func(name string, model interface{}, dst *int64, scope func(*gorm.DB) *gorm.DB) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx := q.Model(model)
			if scope != nil {
				tx = scope(tx)
			}
			if err := tx.Count(dst).Error; err != nil {
				errChan <- fmt.Errorf("%s count: %w", name, err)
			}
		}()
	}

	count("games", &models.Game{}, &stats.Games, nil)
	count("players", &models.Player{}, &stats.Players, nil)
	count("venues", &models.Venue{}, &stats.Venues, nil)
	count("reviews", &models.GameReview{}, &stats.Reviews, nil)
	count("upcoming sessions", &models.GameSession{}, &stats.UpcomingSessions, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ? AND scheduled_date >= ?", models.StatusScheduled, now)
	})
	count("completed plays", &models.GameSession{}, &stats.CompletedPlays, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", models.StatusCompleted)
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		var avg struct{ Avg *float64 }
		if err := q.Model(&models.GameReview{}).Select("AVG(rating) AS avg").Scan(&avg).Error; err != nil {
			errChan <- fmt.Errorf("average rating: %w", err)
			return
		}
		if avg.Avg != nil {
			stats.AverageRating = *avg.Avg
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
		close(errChan)
	}()

	select {
	case <-done:
		if err, failed := <-errChan; failed {
			return nil, err
		}
		return stats, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("calculating club stats: %w", ctx.Err())
	}
}
