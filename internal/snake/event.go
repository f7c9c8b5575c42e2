package snake

import "fmt"

// MessageID identifies an event or command on the wire.
type MessageID uint32

const (
	DirectionIndID MessageID = 0x10
	TimeoutIndID   MessageID = 0x20
	DisplayIndID   MessageID = 0x30
	FoodIndID      MessageID = 0x40
	FoodReqID      MessageID = 0x41
	FoodRespID     MessageID = 0x42
	ScoreIndID     MessageID = 0x70
	LooseIndID     MessageID = 0x71
)

func (id MessageID) String() string {
	switch id {
	case DirectionIndID:
		return "DirectionInd"
	case TimeoutIndID:
		return "TimeoutInd"
	case DisplayIndID:
		return "DisplayInd"
	case FoodIndID:
		return "FoodInd"
	case FoodReqID:
		return "FoodReq"
	case FoodRespID:
		return "FoodResp"
	case ScoreIndID:
		return "ScoreInd"
	case LooseIndID:
		return "LooseInd"
	}
	return fmt.Sprintf("MessageID(%#x)", uint32(id))
}

// Cell is the state a display cell is set to.
type Cell uint8

const (
	Free Cell = iota
	Food
	Snake
)

func (c Cell) String() string {
	switch c {
	case Free:
		return "FREE"
	case Food:
		return "FOOD"
	case Snake:
		return "SNAKE"
	}
	return fmt.Sprintf("Cell(%d)", uint8(c))
}

// Event is a tagged message exchanged with the controller. ID selects which
// of the payload fields are meaningful:
//
//	DirectionInd  Direction
//	FoodInd       X, Y
//	FoodResp      X, Y
//	DisplayInd    X, Y, Cell
//
// TimeoutInd, FoodReq, ScoreInd and LooseInd carry no payload.
type Event struct {
	ID        MessageID `json:"id"`
	Direction Direction `json:"direction"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Cell      Cell      `json:"cell"`
}

func (e Event) String() string {
	switch e.ID {
	case DirectionIndID:
		return fmt.Sprintf("%s{%s}", e.ID, e.Direction)
	case FoodIndID, FoodRespID:
		return fmt.Sprintf("%s{%d,%d}", e.ID, e.X, e.Y)
	case DisplayIndID:
		return fmt.Sprintf("%s{%d,%d,%s}", e.ID, e.X, e.Y, e.Cell)
	}
	return e.ID.String()
}

func TimeoutInd() Event { return Event{ID: TimeoutIndID} }

func DirectionInd(d Direction) Event { return Event{ID: DirectionIndID, Direction: d} }

func FoodInd(x, y int) Event { return Event{ID: FoodIndID, X: x, Y: y} }

func FoodResp(x, y int) Event { return Event{ID: FoodRespID, X: x, Y: y} }

func DisplayInd(x, y int, c Cell) Event { return Event{ID: DisplayIndID, X: x, Y: y, Cell: c} }

func FoodReq() Event { return Event{ID: FoodReqID} }

func ScoreInd() Event { return Event{ID: ScoreIndID} }

func LooseInd() Event { return Event{ID: LooseIndID} }
