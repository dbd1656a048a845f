package entities

// Achievement is a one-time badge a user can unlock.
type Achievement struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

const (
	AchievementFirstQuiz    = "first_quiz"
	AchievementPerfectScore = "perfect_score"
	AchievementSpeedster    = "speedster"
	AchievementCollector    = "collector"
)

// Achievements is the catalog in display order.
var Achievements = []Achievement{
	{Key: AchievementFirstQuiz, Name: "First Steps", Description: "Finish your first quiz"},
	{Key: AchievementPerfectScore, Name: "Flawless", Description: "Answer every question of a quiz correctly"},
	{Key: AchievementSpeedster, Name: "Speedster", Description: "Finish a quiz of 5 or more questions in under 2 minutes"},
	{Key: AchievementCollector, Name: "Collector", Description: "Bookmark 5 flashcards"},
}

// AchievementByKey looks up a catalog entry.
func AchievementByKey(key string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.Key == key {
			return a, true
		}
	}
	return Achievement{}, false
}
