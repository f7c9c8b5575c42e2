package game

import (
	"errors"
	"go-snake/internal/snake"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLevels_SingleFile(t *testing.T) {
	content := "W 10 10 F 5 5\nS U 3 1 1 1 2 1 3"
	path := createTempFile(t, content)

	levels, err := LoadLevels([]string{path})
	if err != nil {
		t.Fatalf("LoadLevels failed: %v", err)
	}
	if len(levels) != 1 {
		t.Fatalf("Expected 1 level, got %d", len(levels))
	}
	if levels[0].Config != "W 10 10 F 5 5 S U 3 1 1 1 2 1 3" {
		t.Errorf("Config mismatch. Got %q", levels[0].Config)
	}
	if levels[0].PartIndex != 1 || levels[0].TotalParts != 1 {
		t.Errorf("Indexing wrong: #%d of %d", levels[0].PartIndex, levels[0].TotalParts)
	}
}

func TestLoadLevels_MultipleLevelsWithTitles(t *testing.T) {
	content := `NAME: Warmup
# a small board
W 5 5 F 4 4 S R 1 0 0
---
NAME: Corridor
W 20 3 F 19 1 S R 2 1 1 0 1
----------------
W 8 8 F 1 1 S D 1 4 4`
	path := createTempFile(t, content)

	levels, err := LoadLevels([]string{path})
	if err != nil {
		t.Fatalf("LoadLevels failed: %v", err)
	}
	if len(levels) != 3 {
		t.Fatalf("Expected 3 levels, got %d", len(levels))
	}

	if levels[0].Title != "Warmup" || levels[1].Title != "Corridor" || levels[2].Title != "" {
		t.Errorf("Titles mismatch: %q %q %q", levels[0].Title, levels[1].Title, levels[2].Title)
	}
	if levels[0].Config != "W 5 5 F 4 4 S R 1 0 0" {
		t.Errorf("Comment should be dropped, got %q", levels[0].Config)
	}
	for i, l := range levels {
		if l.PartIndex != i+1 || l.TotalParts != 3 {
			t.Errorf("Level %d indexing wrong: #%d of %d", i, l.PartIndex, l.TotalParts)
		}
	}
	if got := levels[2].DisplayTitle(); got != filepath.Base(path)+" #3" {
		t.Errorf("Unexpected display title %q", got)
	}
}

func TestLoadLevels_Directory(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("W 5 5 F 4 4 S R 1 0 0"), 0644)
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("W 5 5 F 4 4 S R 1 0 0\n---\nW 6 6 F 1 1 S L 1 3 3"), 0644)
	os.Mkdir(filepath.Join(dir, "sub"), 0755)

	levels, err := LoadLevels([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(levels) != 3 {
		t.Errorf("Expected 3 levels, got %d", len(levels))
	}
}

func TestLoadLevels_BadLevel(t *testing.T) {
	path := createTempFile(t, "W 5 5 F 4 4 S R 1 0 0\n---\nW 5 5 F 4 4 S Q 1 0 0")

	_, err := LoadLevels([]string{path})
	if !errors.Is(err, snake.ErrConfiguration) {
		t.Errorf("Expected ErrConfiguration, got %v", err)
	}
}

func TestLoadLevels_MissingPath(t *testing.T) {
	if _, err := LoadLevels([]string{filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Error("Expected error for a missing path")
	}
}

func TestLevelData_DisplayTitle(t *testing.T) {
	if got := (LevelData{Config: DefaultLevel}).DisplayTitle(); got != "Default" {
		t.Errorf("Expected Default, got %q", got)
	}
	if got := (LevelData{Source: "/x/maze.txt", TotalParts: 1, PartIndex: 1}).DisplayTitle(); got != "maze.txt" {
		t.Errorf("Expected maze.txt, got %q", got)
	}
}

func createTempFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "level_test_*.txt")
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString(content)
	f.Close()
	return f.Name()
}
