package game

import (
	"bufio"
	"fmt"
	"go-snake/internal/snake"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultLevel is played when no level files are given.
const DefaultLevel = "W 20 12 F 14 6 S R 3 5 6 4 6 3 6"

type LevelData struct {
	Config     string
	Source     string
	Title      string
	PartIndex  int
	TotalParts int
}

var (
	separatorRe = regexp.MustCompile(`(?m)^-{3,}[ \t]*$`)
	titleRe     = regexp.MustCompile(`^NAME:\s*(.*)$`)
)

// LoadLevels loads level configurations from files and directories. A file
// may hold several levels separated by lines of three or more dashes; each
// level may start with a "NAME: title" line, and lines starting with '#'
// are comments. Every level is checked with snake.ParseConfig.
func LoadLevels(paths []string) ([]LevelData, error) {
	var levels []LevelData
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %s: %w", path, err)
		}

		if !info.IsDir() {
			l, err := loadFile(path)
			if err != nil {
				return nil, err
			}
			levels = append(levels, l...)
			continue
		}

		files, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read dir %s: %w", path, err)
		}
		for _, entry := range files {
			if entry.IsDir() {
				continue
			}
			l, err := loadFile(filepath.Join(path, entry.Name()))
			if err != nil {
				return nil, err
			}
			levels = append(levels, l...)
		}
	}
	return levels, nil
}

func loadFile(path string) ([]LevelData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	var contentBuilder strings.Builder
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		contentBuilder.WriteString(scanner.Text() + "\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan file %s: %w", path, err)
	}

	var levels []LevelData
	for _, part := range separatorRe.Split(contentBuilder.String(), -1) {
		title, config := parsePart(part)
		if config == "" {
			continue
		}
		if _, err := snake.ParseConfig(config); err != nil {
			return nil, fmt.Errorf("level %d in %s: %w", len(levels)+1, path, err)
		}
		levels = append(levels, LevelData{
			Config: config,
			Source: path,
			Title:  title,
		})
	}

	for i := range levels {
		levels[i].PartIndex = i + 1
		levels[i].TotalParts = len(levels)
	}
	return levels, nil
}

func parsePart(part string) (title, config string) {
	var fields []string
	for _, line := range strings.Split(part, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := titleRe.FindStringSubmatch(line); m != nil && len(fields) == 0 && title == "" {
			title = strings.TrimSpace(m[1])
			continue
		}
		fields = append(fields, strings.Fields(line)...)
	}
	return title, strings.Join(fields, " ")
}

// DisplayTitle names a level for the UI and the score history.
func (l LevelData) DisplayTitle() string {
	if l.Title != "" {
		return l.Title
	}
	if l.Source == "" {
		return "Default"
	}
	title := filepath.Base(l.Source)
	if l.TotalParts > 1 {
		title = fmt.Sprintf("%s #%d", title, l.PartIndex)
	}
	return title
}
