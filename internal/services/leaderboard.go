package services

import (
	"sync"
	"time"

	"github.com/pushp314/runtrail-backend/internal/database"
	"github.com/pushp314/runtrail-backend/internal/models"
)

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	TrophyCount int64  `json:"trophyCount"`
}

// In-memory cache; the leaderboard tolerates slight staleness.
type cachedLeaderboard struct {
	Entries   []LeaderboardEntry
	ExpiresAt time.Time
}

var (
	lbCache cachedLeaderboard
	lbMutex sync.RWMutex
	lbTTL   = 30 * time.Second
)

// InvalidateLeaderboardCache clears the cache (call on new award)
func InvalidateLeaderboardCache() {
	lbMutex.Lock()
	defer lbMutex.Unlock()
	lbCache = cachedLeaderboard{}
}

// GetTrophyLeaderboard ranks users by trophy count.
func GetTrophyLeaderboard(limit int) ([]LeaderboardEntry, error) {
	lbMutex.RLock()
	if len(lbCache.Entries) > 0 && time.Now().Before(lbCache.ExpiresAt) {
		entries := lbCache.Entries
		lbMutex.RUnlock()
		return entries, nil
	}
	lbMutex.RUnlock()

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rows []struct {
		UserID      string
		Username    string
		Name        string
		TrophyCount int64
	}
	err := database.DB.Model(&models.UserTrophy{}).
		Select("user_trophies.user_id, users.username, users.name, COUNT(*) AS trophy_count").
		Joins("JOIN users ON users.id = user_trophies.user_id").
		Group("user_trophies.user_id, users.username, users.name").
		Order("trophy_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			UserID:      row.UserID,
			Username:    row.Username,
			Name:        row.Name,
			TrophyCount: row.TrophyCount,
		})
	}

	lbMutex.Lock()
	lbCache = cachedLeaderboard{Entries: entries, ExpiresAt: time.Now().Add(lbTTL)}
	lbMutex.Unlock()

	return entries, nil
}
