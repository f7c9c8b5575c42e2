package snake

// Direction is a two-bit heading. Bit 0 selects the axis (0 vertical,
// 1 horizontal) and bit 1 the sign along it (0 negative, 1 positive).
type Direction uint8

const (
	Up    Direction = 0b00
	Down  Direction = 0b10
	Left  Direction = 0b01
	Right Direction = 0b11
)

const (
	axisBit = 0b01
	signBit = 0b10
)

// Axis identifies the movement axis of a Direction.
type Axis uint8

const (
	Vertical   Axis = 0
	Horizontal Axis = 1
)

// ParseDirection maps the configuration letters U, D, L and R to a Direction.
func ParseDirection(b byte) (Direction, bool) {
	switch b {
	case 'U':
		return Up, true
	case 'D':
		return Down, true
	case 'L':
		return Left, true
	case 'R':
		return Right, true
	}
	return 0, false
}

func (d Direction) Axis() Axis {
	return Axis(d & axisBit)
}

// Positive reports whether the direction increases the coordinate on its axis.
func (d Direction) Positive() bool {
	return d&signBit != 0
}

// Delta returns the one-cell step for the direction. Up is y-1.
func (d Direction) Delta() (dx, dy int) {
	step := -1
	if d.Positive() {
		step = 1
	}
	if d.Axis() == Horizontal {
		return step, 0
	}
	return 0, step
}

// Perpendicular reports whether other lies on the other axis. Only
// perpendicular turns are legal.
func (d Direction) Perpendicular(other Direction) bool {
	return d.Axis() != other.Axis()
}

func (d Direction) String() string {
	switch d & (axisBit | signBit) {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	default:
		return "RIGHT"
	}
}
