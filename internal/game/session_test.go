package game

import (
	"fmt"
	"go-snake/internal/food"
	"go-snake/internal/state"
	"reflect"
	"testing"
)

func TestSession_Flow(t *testing.T) {
	levels := []LevelData{
		{Config: "W 3 3 F 0 0 S U 1 1 0", Title: "A"},
		{Config: "W 3 3 F 1 0 S U 1 1 1", Title: "B"},
	}
	store := &MockStorage{}

	sess, err := NewSession(levels, state.GameOptions{}, store, food.NewGenerator(1), nil, false)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if !sess.IsBatch {
		t.Error("Two levels should be a batch")
	}

	// Level A: head (1,0) heading up leaves the map.
	sess.CurrentGame.HandleTick()
	sess.Update()
	if !sess.CurrentGame.State.Loss {
		t.Fatal("Level A should be lost")
	}
	if sess.TotalScore != 0 {
		t.Errorf("Expected total 0, got %d", sess.TotalScore)
	}

	if err := sess.Advance(); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if sess.CurrentIndex != 1 || sess.CurrentLevel().Title != "B" {
		t.Fatalf("Should be on level B, index %d", sess.CurrentIndex)
	}

	// Level B: eat the food at (1,0), then leave the map.
	sess.CurrentGame.HandleTick()
	if sess.CurrentGame.State.Score.CurrentScore != 100 {
		t.Errorf("Expected 100 on level B, got %d", sess.CurrentGame.State.Score.CurrentScore)
	}
	sess.CurrentGame.HandleTick()
	sess.Update()
	sess.Update()
	if !sess.CurrentGame.State.Loss {
		t.Fatal("Level B should be lost")
	}
	if sess.TotalScore != 100 {
		t.Errorf("Expected total 100 counted once, got %d", sess.TotalScore)
	}

	if err := sess.Advance(); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if !sess.IsFinished() {
		t.Error("Session should be finished")
	}
	if len(store.Entries) != 2 {
		t.Errorf("Expected one saved entry per level, got %d", len(store.Entries))
	}
}

func TestSession_AdvanceWhilePlaying(t *testing.T) {
	levels := []LevelData{{Config: DefaultLevel}}
	sess, err := NewSession(levels, state.GameOptions{}, &MockStorage{}, food.NewGenerator(1), nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if sess.IsBatch {
		t.Error("One level is not a batch")
	}

	if err := sess.Advance(); err != nil {
		t.Fatal(err)
	}
	if sess.CurrentIndex != 0 {
		t.Error("Advance must not skip a level that is still being played")
	}
}

func TestSession_NoLevels(t *testing.T) {
	if _, err := NewSession(nil, state.GameOptions{}, &MockStorage{}, food.NewGenerator(1), nil, false); err == nil {
		t.Error("Expected error for an empty session")
	}
}

func TestSession_Randomize(t *testing.T) {
	levels := []LevelData{
		{Config: "W 3 3 F 0 0 S U 1 1 0", Title: "A"},
		{Config: "W 3 3 F 1 0 S U 1 1 1", Title: "B"},
		{Config: DefaultLevel, Title: "C"},
	}
	sess, err := NewSession(levels, state.GameOptions{}, &MockStorage{}, food.NewGenerator(1), nil, true)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, l := range sess.Levels {
		seen[l.Title] = true
	}
	if len(seen) != 3 {
		t.Errorf("Shuffling lost levels: %v", seen)
	}
}

func shuffledTitles(t *testing.T, seed uint64) []string {
	t.Helper()
	var levels []LevelData
	for i := 0; i < 10; i++ {
		levels = append(levels, LevelData{Config: DefaultLevel, Title: fmt.Sprint(i)})
	}
	sess, err := NewSession(levels, state.GameOptions{}, &MockStorage{}, food.NewGenerator(seed), nil, true)
	if err != nil {
		t.Fatal(err)
	}
	var titles []string
	for _, l := range sess.Levels {
		titles = append(titles, l.Title)
	}
	return titles
}

func TestSession_RandomizeFollowsSeed(t *testing.T) {
	a, b := shuffledTitles(t, 7), shuffledTitles(t, 7)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Same seed gave different orders: %v and %v", a, b)
	}

	c := shuffledTitles(t, 8)
	if reflect.DeepEqual(a, c) {
		t.Errorf("Seeds 7 and 8 gave the same order %v", a)
	}
}
