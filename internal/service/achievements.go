package service

import (
	"time"

	"github.com/aliskhannn/api-learning-hub/internal/domain/entities"
)

const (
	speedsterMinQuestions = 5
	speedsterMaxElapsed   = 2 * time.Minute
	collectorBookmarks    = 5
)

// EarnedForResults returns the achievement keys a finished quiz qualifies for.
func EarnedForResults(r entities.QuizResults) []string {
	keys := []string{entities.AchievementFirstQuiz}
	if r.Total > 0 && r.Score == r.Total {
		keys = append(keys, entities.AchievementPerfectScore)
	}
	if r.Total >= speedsterMinQuestions && r.Elapsed < speedsterMaxElapsed {
		keys = append(keys, entities.AchievementSpeedster)
	}
	return keys
}

// EarnedForBookmarks returns the achievement keys a bookmark count qualifies for.
func EarnedForBookmarks(n int) []string {
	if n >= collectorBookmarks {
		return []string{entities.AchievementCollector}
	}
	return nil
}

// unlockAll unlocks keys on p and returns the catalog entries that were new.
func unlockAll(p *entities.Preferences, keys []string) []entities.Achievement {
	var out []entities.Achievement
	for _, k := range keys {
		if !p.Unlock(k) {
			continue
		}
		if a, ok := entities.AchievementByKey(k); ok {
			out = append(out, a)
		}
	}
	return out
}

// AchievementStatus is a catalog entry with its unlock state for one user.
type AchievementStatus struct {
	entities.Achievement
	Unlocked bool `json:"unlocked"`
}

// AchievementStatuses lists the whole catalog against a user's unlocked set.
func AchievementStatuses(p *entities.Preferences) []AchievementStatus {
	out := make([]AchievementStatus, 0, len(entities.Achievements))
	for _, a := range entities.Achievements {
		out = append(out, AchievementStatus{Achievement: a, Unlocked: p.Achievements[a.Key]})
	}
	return out
}
