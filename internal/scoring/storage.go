package scoring

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ScoreStorage loads and saves score entries.
type ScoreStorage interface {
	// LoadAll loads all score entries from the persistence layer.
	LoadAll() ([]ScoreHistoryEntry, error)
	// SaveAll overwrites the persisted entries.
	SaveAll(entries []ScoreHistoryEntry) error
}

// JSONFileStorage keeps one JSON entry per line. Saves go through a
// temporary file in the same directory and replace the score file in one
// rename, so an interrupted save leaves the previous history intact.
type JSONFileStorage struct {
	path string
}

// NewJSONFileStorage returns a storage backed by path, or by
// ~/.config/go-snake/scores.json when path is empty.
func NewJSONFileStorage(path string) (*JSONFileStorage, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".config", "go-snake", "scores.json")
	}
	return &JSONFileStorage{path: path}, nil
}

func (jfs *JSONFileStorage) Path() string {
	return jfs.path
}

// LoadAll reads every entry. A missing file is an empty history; blank
// lines are skipped.
func (jfs *JSONFileStorage) LoadAll() ([]ScoreHistoryEntry, error) {
	file, err := os.Open(jfs.path)
	if os.IsNotExist(err) {
		return []ScoreHistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening scores file for reading: %w", err)
	}
	defer file.Close()

	entries := make([]ScoreHistoryEntry, 0)
	scanner := bufio.NewScanner(file)
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var entry ScoreHistoryEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("%s:%d: bad score entry: %w", jfs.path, line, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading scores file: %w", err)
	}

	return entries, nil
}

// SaveAll replaces the score file with entries.
func (jfs *JSONFileStorage) SaveAll(entries []ScoreHistoryEntry) error {
	dir := filepath.Dir(jfs.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating scores directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary scores file: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	encoder := json.NewEncoder(writer)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			tmp.Close()
			return fmt.Errorf("error encoding score entry: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing temporary scores file: %w", err)
	}

	if err := os.Rename(tmp.Name(), jfs.path); err != nil {
		return fmt.Errorf("error replacing scores file: %w", err)
	}
	return nil
}
