package snake

import (
	"fmt"

	"github.com/golang/glog"
)

// Controller owns the snake body, its heading and the food cell. It reacts
// to one event at a time and reports every change through its ports.
type Controller struct {
	displayPort Port
	foodPort    Port
	scorePort   Port

	width, height int
	food          Position
	direction     Direction
	segments      []Segment // head first
}

// NewController builds a controller from a configuration string. On error
// no controller is returned.
func NewController(displayPort, foodPort, scorePort Port, config string) (*Controller, error) {
	cfg, err := ParseConfig(config)
	if err != nil {
		return nil, err
	}
	return NewControllerFromConfig(displayPort, foodPort, scorePort, cfg), nil
}

// NewControllerFromConfig builds a controller from an already parsed
// configuration. The segment slice is copied.
func NewControllerFromConfig(displayPort, foodPort, scorePort Port, cfg Config) *Controller {
	return &Controller{
		displayPort: displayPort,
		foodPort:    foodPort,
		scorePort:   scorePort,
		width:       cfg.Width,
		height:      cfg.Height,
		food:        cfg.Food,
		direction:   cfg.Direction,
		segments:    append([]Segment(nil), cfg.Segments...),
	}
}

// Receive handles one event. Events other than TimeoutInd, DirectionInd,
// FoodInd and FoodResp are rejected with ErrUnexpectedEvent and leave the
// controller untouched.
func (c *Controller) Receive(e Event) error {
	switch e.ID {
	case TimeoutIndID:
		c.tick()
	case DirectionIndID:
		c.turn(e.Direction)
	case FoodIndID:
		c.placeFood(e.X, e.Y, true)
	case FoodRespID:
		c.placeFood(e.X, e.Y, false)
	default:
		return fmt.Errorf("%w: %s", ErrUnexpectedEvent, e.ID)
	}
	return nil
}

func (c *Controller) tick() {
	head := c.segments[0]
	dx, dy := c.direction.Delta()
	newHead := Segment{X: head.X + dx, Y: head.Y + dy, TTL: head.TTL}

	if c.occupied(newHead.X, newHead.Y) {
		glog.V(2).Infof("snake: self collision at (%d,%d)", newHead.X, newHead.Y)
		c.scorePort.Send(LooseInd())
		return
	}

	switch {
	case newHead.X == c.food.X && newHead.Y == c.food.Y:
		glog.V(2).Infof("snake: food eaten at (%d,%d)", newHead.X, newHead.Y)
		c.scorePort.Send(ScoreInd())
		c.foodPort.Send(FoodReq())
	case !c.inBounds(newHead.X, newHead.Y):
		glog.V(2).Infof("snake: left the map at (%d,%d)", newHead.X, newHead.Y)
		c.scorePort.Send(LooseInd())
		return
	default:
		for i := range c.segments {
			c.segments[i].TTL--
			if c.segments[i].TTL == 0 {
				c.displayPort.Send(DisplayInd(c.segments[i].X, c.segments[i].Y, Free))
			}
		}
	}

	c.segments = append(c.segments, Segment{})
	copy(c.segments[1:], c.segments)
	c.segments[0] = newHead
	c.displayPort.Send(DisplayInd(newHead.X, newHead.Y, Snake))

	alive := c.segments[:0]
	for _, seg := range c.segments {
		if seg.TTL > 0 {
			alive = append(alive, seg)
		}
	}
	c.segments = alive
}

func (c *Controller) turn(d Direction) {
	if !c.direction.Perpendicular(d) {
		glog.V(2).Infof("snake: ignoring turn %s while heading %s", d, c.direction)
		return
	}
	c.direction = d
}

// placeFood resolves a proposed food cell. A cell under the snake is
// rejected with a new FoodReq; otherwise the cell is displayed as food,
// after freeing the previous food cell when freePrevious is set. The food
// position is recorded in both cases.
func (c *Controller) placeFood(x, y int, freePrevious bool) {
	if c.occupied(x, y) {
		glog.V(2).Infof("snake: food at (%d,%d) collides with the body", x, y)
		c.foodPort.Send(FoodReq())
	} else {
		if freePrevious {
			c.displayPort.Send(DisplayInd(c.food.X, c.food.Y, Free))
		}
		c.displayPort.Send(DisplayInd(x, y, Food))
	}
	c.food = Position{X: x, Y: y}
}

func (c *Controller) occupied(x, y int) bool {
	for _, seg := range c.segments {
		if seg.X == x && seg.Y == y {
			return true
		}
	}
	return false
}

func (c *Controller) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// Segments returns a copy of the body, head first.
func (c *Controller) Segments() []Segment {
	return append([]Segment(nil), c.segments...)
}

func (c *Controller) Head() Segment {
	return c.segments[0]
}

func (c *Controller) Direction() Direction {
	return c.direction
}

func (c *Controller) Food() Position {
	return c.food
}

func (c *Controller) Width() int {
	return c.width
}

func (c *Controller) Height() int {
	return c.height
}
