package scoring

import (
	"errors"
	"testing"
)

// MockScoreStorage keeps score entries in memory.
type MockScoreStorage struct {
	Entries []ScoreHistoryEntry
	err     error // To simulate errors from the storage layer.
}

func (m *MockScoreStorage) LoadAll() ([]ScoreHistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.Entries, nil
}

func (m *MockScoreStorage) SaveAll(entries []ScoreHistoryEntry) error {
	if m.err != nil {
		return m.err
	}
	m.Entries = entries
	return nil
}

const level = "W 10 10 F 5 5 S U 3 1 1 1 2 1 3"

// TestInitScoring_NewLevel verifies a level with no history.
func TestInitScoring_NewLevel(t *testing.T) {
	scoring, err := InitScoring(level, "Level 1", &MockScoreStorage{})
	if err != nil {
		t.Fatalf("InitScoring returned an unexpected error: %v", err)
	}

	if scoring.GetAttempts() != 0 {
		t.Errorf("expected 0 attempts, but got %d", scoring.GetAttempts())
	}
	if scoring.GetHighScore() != nil {
		t.Errorf("expected nil high score, but got %v", scoring.GetHighScore())
	}
	if scoring.CurrentScore != 0 {
		t.Errorf("expected initial score of 0, but got %d", scoring.CurrentScore)
	}
	if scoring.GameID == "" {
		t.Error("expected a game id")
	}
}

// TestInitScoring_WithHistory verifies that only the level's entries are loaded.
func TestInitScoring_WithHistory(t *testing.T) {
	hash := calculateHash(level)
	mockStorage := &MockScoreStorage{
		Entries: []ScoreHistoryEntry{
			{Hash: "some_other_hash", Score: 9999, Title: "Other"},
			{Hash: hash, GameID: "a", Score: 500, Title: "High"},
			{Hash: hash, GameID: "b", Score: 120, Title: "Low"},
		},
	}

	scoring, err := InitScoring(level, "Level 1", mockStorage)
	if err != nil {
		t.Fatalf("InitScoring returned an unexpected error: %v", err)
	}

	if scoring.GetAttempts() != 2 {
		t.Errorf("expected 2 attempts, but got %d", scoring.GetAttempts())
	}
	highScore := scoring.GetHighScore()
	if highScore == nil {
		t.Fatalf("expected a high score, but got nil")
	}
	if highScore.Score != 500 {
		t.Errorf("expected high score of 500, but got %d", highScore.Score)
	}
}

func TestInitScoring_StorageError(t *testing.T) {
	_, err := InitScoring(level, "Level 1", &MockScoreStorage{err: errors.New("disk gone")})
	if err == nil {
		t.Fatal("expected an error from a failing storage")
	}
}

// TestScoreEvent checks that food and ticks change the score.
func TestScoreEvent(t *testing.T) {
	scoring, _ := InitScoring(level, "Level 1", &MockScoreStorage{})

	scoring.ScoreEvent("food")
	if scoring.CurrentScore != 100 {
		t.Errorf("food: expected score 100, got %d", scoring.CurrentScore)
	}
	if scoring.FoodEaten != 1 {
		t.Errorf("food: expected 1 food eaten, got %d", scoring.FoodEaten)
	}

	scoring.ScoreEvent("tick")
	scoring.ScoreEvent("tick")
	if scoring.CurrentScore != 102 {
		t.Errorf("tick: expected score 102, got %d", scoring.CurrentScore)
	}
	if scoring.Ticks != 2 {
		t.Errorf("tick: expected 2 ticks, got %d", scoring.Ticks)
	}

	scoring.ScoreEvent("unknown")
	if scoring.CurrentScore != 102 {
		t.Errorf("unknown events should not score, got %d", scoring.CurrentScore)
	}
}

func TestSaveEntries(t *testing.T) {
	hash := calculateHash(level)
	mockStorage := &MockScoreStorage{
		Entries: []ScoreHistoryEntry{
			{Hash: "other", GameID: "x", Score: 1},
			{Hash: hash, GameID: "old", Score: 50},
		},
	}

	scoring, _ := InitScoring(level, "Level 1", mockStorage)
	scoring.ScoreEvent("food")

	if err := scoring.SaveEntries(); err != nil {
		t.Fatalf("SaveEntries failed: %v", err)
	}

	if len(mockStorage.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(mockStorage.Entries))
	}
	found := false
	for _, e := range mockStorage.Entries {
		if e.GameID == scoring.GameID {
			found = true
			if e.Score != 100 || e.FoodEaten != 1 {
				t.Errorf("current entry mismatch: %+v", e)
			}
		}
	}
	if !found {
		t.Error("current run was not saved")
	}
	if !scoring.GotHighScore() {
		t.Error("100 should beat the previous best of 50")
	}
}

// TestGetNScoreEntries_IncludesCurrent checks the current run is ranked with history.
func TestGetNScoreEntries_IncludesCurrent(t *testing.T) {
	hash := calculateHash(level)
	mockStorage := &MockScoreStorage{
		Entries: []ScoreHistoryEntry{
			{Hash: hash, Score: 100, Title: "Low"},
			{Hash: hash, Score: 300, Title: "High"},
		},
	}

	scoring, _ := InitScoring(level, "Level 1", mockStorage)
	scoring.ScoreEvent("food")
	scoring.ScoreEvent("food")

	entries := scoring.GetNScoreEntries(5)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Score != 300 || entries[1].Score != 200 || entries[2].Score != 100 {
		t.Errorf("unexpected order: %+v", entries)
	}

	if top := scoring.GetNScoreEntries(1); len(top) != 1 || top[0].Score != 300 {
		t.Errorf("expected only the best entry, got %+v", top)
	}
}
