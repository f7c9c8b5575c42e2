package scoring

import (
	"sort"
)

// ScoreHistory holds the entries recorded for one level and the current run.
type ScoreHistory struct {
	Entries        []ScoreHistoryEntry
	HighScoreEntry *ScoreHistoryEntry
	CurrentScore   *ScoreHistoryEntry
	Attempts       int
}

// ScoreHistoryEntry is a single finished run of a level.
type ScoreHistoryEntry struct {
	Hash      string `json:"hash"`
	GameID    string `json:"game_id"`
	Score     int    `json:"score"`
	FoodEaten int    `json:"food_eaten"`
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
}

func (sh ScoreHistory) GetHighScoreEntry() *ScoreHistoryEntry {
	return sh.HighScoreEntry
}

// GetNScoreEntries returns the top N entries sorted by score.
func (sh ScoreHistory) GetNScoreEntries(n int) []ScoreHistoryEntry {
	entriesCopy := make([]ScoreHistoryEntry, len(sh.Entries))
	copy(entriesCopy, sh.Entries)

	sort.SliceStable(entriesCopy, func(i, j int) bool {
		return entriesCopy[i].Score > entriesCopy[j].Score
	})

	if len(entriesCopy) < n {
		return entriesCopy
	}
	return entriesCopy[:n]
}

// GotHighScore reports whether the current run matches or beats the best
// recorded run. With nothing recorded it is trivially true.
func (sh ScoreHistory) GotHighScore() bool {
	if sh.HighScoreEntry == nil || sh.CurrentScore == nil {
		return true
	}
	return sh.CurrentScore.Score >= sh.HighScoreEntry.Score
}
