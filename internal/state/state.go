package state

import (
	"context"
	"go-snake/internal/scoring"
	"go-snake/internal/snake"

	"github.com/golang/glog"
	"github.com/looplab/fsm"
)

type GameOptions struct {
	TickScore       bool // award a point for every survived tick
	RelocateEvery   int  // ticks between unsolicited food relocations, 0 off
	MaxFoodAttempts int  // food responses tried per tick before deferring
}

// State is what the controller's ports write into: the displayed board,
// outstanding food requests and the score. Its FSM tracks the game lifecycle.
type State struct {
	Board       [][]snake.Cell // Board[y][x]
	Width       int
	Height      int
	Score       scoring.Scoring
	FSM         *fsm.FSM
	Loss        bool // Set once the controller reported LooseInd
	PendingFood int  // FoodReq commands not yet answered
	Ticks       int
	Options     GameOptions
}

func NewState(width, height int, scoring scoring.Scoring, opts GameOptions) *State {
	if opts.MaxFoodAttempts <= 0 {
		opts.MaxFoodAttempts = 16
	}
	s := &State{
		Width:   width,
		Height:  height,
		Score:   scoring,
		Options: opts,
	}
	s.Board = newBoard(width, height)

	s.FSM = fsm.NewFSM(
		"start",
		getStateTransitions(),
		getStateCallbacks(s),
	)

	return s
}

// DisplayPort returns the port that draws DisplayInd commands onto the board.
func (s *State) DisplayPort() snake.Port {
	return snake.PortFunc(func(e snake.Event) {
		if e.ID != snake.DisplayIndID {
			glog.Warningf("state: display port got %s", e)
			return
		}
		s.SetCell(e.X, e.Y, e.Cell)
	})
}

// FoodPort returns the port that queues FoodReq commands.
func (s *State) FoodPort() snake.Port {
	return snake.PortFunc(func(e snake.Event) {
		if e.ID != snake.FoodReqID {
			glog.Warningf("state: food port got %s", e)
			return
		}
		s.PendingFood++
	})
}

// ScorePort returns the port that feeds ScoreInd and LooseInd into the lifecycle FSM.
func (s *State) ScorePort() snake.Port {
	return snake.PortFunc(func(e snake.Event) {
		var err error
		switch e.ID {
		case snake.ScoreIndID:
			err = s.FSM.Event(context.Background(), "score")
		case snake.LooseIndID:
			err = s.FSM.Event(context.Background(), "lose")
		default:
			glog.Warningf("state: score port got %s", e)
			return
		}
		if err != nil {
			glog.V(1).Infof("state: %s ignored in %s: %v", e, s.FSM.Current(), err)
		}
	})
}

// Paint redraws the board from scratch with the given body and food.
func (s *State) Paint(segments []snake.Segment, food snake.Position) {
	s.Board = newBoard(s.Width, s.Height)
	s.SetCell(food.X, food.Y, snake.Food)
	for _, seg := range segments {
		s.SetCell(seg.X, seg.Y, snake.Snake)
	}
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "initGame", Src: []string{"start"}, Dst: "playing"},

		{Name: "tick", Src: []string{"playing"}, Dst: "ticking"},
		{Name: "ticked", Src: []string{"ticking"}, Dst: "playing"},

		{Name: "score", Src: []string{"playing"}, Dst: "scoring"},
		{Name: "scored", Src: []string{"scoring"}, Dst: "playing"},

		{Name: "lose", Src: []string{"playing"}, Dst: "endState"},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_ticking": func(ctx context.Context, e *fsm.Event) {
			s.Ticks++
			if s.Options.TickScore {
				s.Score.ScoreEvent("tick")
			}
			e.FSM.Event(ctx, "ticked")
		},
		"enter_scoring": func(ctx context.Context, e *fsm.Event) {
			s.Score.ScoreEvent("food")
			e.FSM.Event(ctx, "scored")
		},
		"enter_endState": func(ctx context.Context, e *fsm.Event) {
			s.Loss = true
			if err := s.Score.SaveEntries(); err != nil {
				glog.Errorf("state: saving score: %v", err)
			}
		},
	}
}
