package scoring

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Scoring keeps the score of one level run and its history for that level.
type Scoring struct {
	// public
	CurrentScore int
	FoodEaten    int
	Ticks        int
	GameID       string
	// private
	storage    ScoreStorage // The interface for loading/saving scores.
	history    ScoreHistory
	scoreTable map[string]int
	levelHash  string
}

// InitScoring creates a Scoring for a level and loads the level's previous
// entries from storage. Levels are identified by a hash of their configuration.
func InitScoring(levelConfig string, title string, storage ScoreStorage) (*Scoring, error) {
	s := &Scoring{
		scoreTable: getScoreTable(),
		storage:    storage,
		levelHash:  calculateHash(levelConfig),
		GameID:     uuid.New().String(),
	}

	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("could not load score history: %w", err)
	}

	filteredEntries := []ScoreHistoryEntry{}
	for _, entry := range allEntries {
		if entry.Hash == s.levelHash {
			filteredEntries = append(filteredEntries, entry)
		}
	}

	sort.Slice(filteredEntries, func(i, j int) bool {
		return filteredEntries[i].Score > filteredEntries[j].Score
	})

	s.history.Entries = filteredEntries
	s.history.Attempts = len(filteredEntries)
	if len(filteredEntries) > 0 {
		s.history.HighScoreEntry = &filteredEntries[0]
	}

	s.history.CurrentScore = &ScoreHistoryEntry{
		Hash:      s.levelHash,
		GameID:    s.GameID,
		Score:     s.CurrentScore,
		Timestamp: time.Now().Format(time.RFC3339),
		Title:     title,
	}

	return s, nil
}

// ScoreEvent updates the score for a game event.
func (s *Scoring) ScoreEvent(event string) {
	switch event {
	case "food":
		s.FoodEaten++
	case "tick":
		s.Ticks++
	}
	s.CurrentScore += s.scoreTable[event]

	if s.history.CurrentScore != nil {
		s.history.CurrentScore.Score = s.CurrentScore
		s.history.CurrentScore.FoodEaten = s.FoodEaten
	}
}

// SaveEntries persists the score of the finished run next to the level's
// earlier entries and every other level's entries.
func (s *Scoring) SaveEntries() error {
	if s.history.CurrentScore == nil {
		return nil
	}

	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return fmt.Errorf("could not load scores for saving: %w", err)
	}

	updatedEntries := make([]ScoreHistoryEntry, 0, len(allEntries)+1)
	for _, entry := range allEntries {
		if entry.Hash != s.levelHash {
			updatedEntries = append(updatedEntries, entry)
		}
	}

	updatedEntries = append(updatedEntries, *s.history.CurrentScore)
	for _, entry := range s.history.Entries {
		if entry.GameID != s.history.CurrentScore.GameID {
			updatedEntries = append(updatedEntries, entry)
		}
	}

	return s.storage.SaveAll(updatedEntries)
}

func (s *Scoring) GetHighScore() *ScoreHistoryEntry {
	return s.history.GetHighScoreEntry()
}

func (s *Scoring) GetAttempts() int {
	return s.history.Attempts
}

func (s *Scoring) GotHighScore() bool {
	return s.history.GotHighScore()
}

// GetNScoreEntries returns the top n entries for the level, including the current run.
func (s *Scoring) GetNScoreEntries(n int) []ScoreHistoryEntry {
	h := s.history
	if h.CurrentScore != nil {
		h.Entries = append(append([]ScoreHistoryEntry(nil), h.Entries...), *h.CurrentScore)
	}
	return h.GetNScoreEntries(n)
}

func calculateHash(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}

func getScoreTable() map[string]int {
	return map[string]int{
		"food": 100,
		"tick": 1,
	}
}
