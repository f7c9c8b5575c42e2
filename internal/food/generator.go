// Package food proposes food cells for the snake controller. It plays the
// food service: it answers FoodReq commands with FoodResp events and can
// relocate food on its own with FoodInd events.
package food

import (
	"github.com/golang/glog"
	"golang.org/x/exp/rand"

	"go-snake/internal/snake"
)

// Generator picks random cells on a width x height map.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator. The same seed yields the same sequence of cells.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a random cell inside [0,width) x [0,height).
func (g *Generator) Next(width, height int) snake.Position {
	if width <= 0 || height <= 0 {
		return snake.Position{}
	}
	return snake.Position{X: g.rng.Intn(width), Y: g.rng.Intn(height)}
}

// Shuffle permutes n items with the generator's source, so a seed also
// fixes the order of anything shuffled with it.
func (g *Generator) Shuffle(n int, swap func(i, j int)) {
	g.rng.Shuffle(n, swap)
}

// Response answers a food request.
func (g *Generator) Response(width, height int) snake.Event {
	p := g.Next(width, height)
	glog.V(2).Infof("food: proposing (%d,%d)", p.X, p.Y)
	return snake.FoodResp(p.X, p.Y)
}

// Relocation proposes an unsolicited new food cell.
func (g *Generator) Relocation(width, height int) snake.Event {
	p := g.Next(width, height)
	glog.V(2).Infof("food: relocating to (%d,%d)", p.X, p.Y)
	return snake.FoodInd(p.X, p.Y)
}
