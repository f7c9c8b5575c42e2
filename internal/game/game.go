package game

import (
	"context"
	"go-snake/internal/food"
	"go-snake/internal/scoring"
	"go-snake/internal/snake"
	"go-snake/internal/state"

	"github.com/golang/glog"
)

// Game wires one controller to its state and to the food service.
type Game struct {
	State      *state.State
	Controller *snake.Controller
	Food       *food.Generator
}

// NewGame builds a game for a level configuration. watcher, when not nil,
// also receives every command the controller emits.
func NewGame(levelConfig string, sc scoring.Scoring, opts state.GameOptions, gen *food.Generator, watcher snake.Port) (*Game, error) {
	cfg, err := snake.ParseConfig(levelConfig)
	if err != nil {
		return nil, err
	}

	st := state.NewState(cfg.Width, cfg.Height, sc, opts)
	ctrl := snake.NewControllerFromConfig(
		snake.Tee(st.DisplayPort(), watcher),
		snake.Tee(st.FoodPort(), watcher),
		snake.Tee(st.ScorePort(), watcher),
		cfg,
	)

	return &Game{
		State:      st,
		Controller: ctrl,
		Food:       gen,
	}, nil
}

// Init paints the starting layout and starts the lifecycle.
func (g *Game) Init() {
	g.State.Paint(g.Controller.Segments(), g.Controller.Food())
	_ = g.State.FSM.Event(context.Background(), "initGame")
}

// HandleTick advances the snake one cell and then serves the food requests
// it produced. Ticks after a loss are ignored.
func (g *Game) HandleTick() {
	if g.State.Loss {
		return
	}
	_ = g.State.FSM.Event(context.Background(), "tick")
	g.send(snake.TimeoutInd())
	if g.State.Loss {
		return
	}

	g.ServeFood()

	every := g.State.Options.RelocateEvery
	if every > 0 && g.State.Ticks%every == 0 && g.State.PendingFood == 0 {
		g.send(g.Food.Relocation(g.Controller.Width(), g.Controller.Height()))
		g.ServeFood()
	}
}

// HandleDirection forwards a steering request.
func (g *Game) HandleDirection(d snake.Direction) {
	if g.State.Loss {
		return
	}
	g.send(snake.DirectionInd(d))
}

// ServeFood answers outstanding food requests. A proposal that lands on the
// snake is re-requested by the controller; after MaxFoodAttempts proposals
// the rest wait for the next tick.
func (g *Game) ServeFood() {
	for attempts := 0; g.State.PendingFood > 0 && attempts < g.State.Options.MaxFoodAttempts; attempts++ {
		g.State.PendingFood--
		g.send(g.Food.Response(g.Controller.Width(), g.Controller.Height()))
	}
}

func (g *Game) send(e snake.Event) {
	if err := g.Controller.Receive(e); err != nil {
		glog.Errorf("game: %v", err)
	}
}
