package game

import (
	"fmt"
	"go-snake/internal/food"
	"go-snake/internal/scoring"
	"go-snake/internal/snake"
	"go-snake/internal/state"

	"github.com/golang/glog"
)

// Session plays a list of levels one after another. A loss ends the
// current level; the session is finished after the last one.
type Session struct {
	Levels       []LevelData
	CurrentIndex int
	CurrentGame  *Game
	GameOptions  state.GameOptions
	ScoreStorage scoring.ScoreStorage
	Food         *food.Generator
	Watcher      snake.Port

	// Aggregate State
	TotalScore int
	counted    bool

	// Batch State
	IsBatch   bool
	Randomize bool
}

func NewSession(levels []LevelData, opts state.GameOptions, storage scoring.ScoreStorage, gen *food.Generator, watcher snake.Port, randomize bool) (*Session, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels to play")
	}

	s := &Session{
		Levels:       levels,
		GameOptions:  opts,
		ScoreStorage: storage,
		Food:         gen,
		Watcher:      watcher,
		IsBatch:      len(levels) > 1,
		Randomize:    randomize,
	}

	if s.IsBatch && s.Randomize {
		s.Food.Shuffle(len(s.Levels), func(i, j int) {
			s.Levels[i], s.Levels[j] = s.Levels[j], s.Levels[i]
		})
	}

	if err := s.NextGame(); err != nil {
		return nil, err
	}
	return s, nil
}

// NextGame starts the level at CurrentIndex.
func (s *Session) NextGame() error {
	if s.CurrentIndex >= len(s.Levels) {
		return fmt.Errorf("no more levels")
	}
	level := s.Levels[s.CurrentIndex]

	sc, err := scoring.InitScoring(level.Config, level.DisplayTitle(), s.ScoreStorage)
	if err != nil {
		return err
	}

	g, err := NewGame(level.Config, *sc, s.GameOptions, s.Food, s.Watcher)
	if err != nil {
		return fmt.Errorf("level %s: %w", level.DisplayTitle(), err)
	}
	g.Init()

	glog.Infof("session: starting level %d/%d %q (game %s)", s.CurrentIndex+1, len(s.Levels), level.DisplayTitle(), sc.GameID)
	s.CurrentGame = g
	s.counted = false
	return nil
}

// Update folds the score of a lost level into the session total once.
func (s *Session) Update() {
	if s.CurrentGame == nil || s.counted {
		return
	}
	if s.CurrentGame.State.Loss {
		s.TotalScore += s.CurrentGame.State.Score.CurrentScore
		s.counted = true
	}
}

// Advance moves past a finished level and starts the next one, if any.
func (s *Session) Advance() error {
	if s.CurrentGame == nil || !s.CurrentGame.State.Loss {
		return nil
	}
	s.Update()
	s.CurrentIndex++
	if s.IsFinished() {
		return nil
	}
	return s.NextGame()
}

func (s *Session) IsFinished() bool {
	return s.CurrentIndex >= len(s.Levels)
}

func (s *Session) CurrentLevel() LevelData {
	if s.IsFinished() {
		return s.Levels[len(s.Levels)-1]
	}
	return s.Levels[s.CurrentIndex]
}
