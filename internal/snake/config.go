package snake

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrConfiguration is returned when a controller configuration string is malformed.
	ErrConfiguration = errors.New("bad configuration of snake controller")
	// ErrUnexpectedEvent is returned when Receive gets an event it has no handler for.
	ErrUnexpectedEvent = errors.New("unexpected event received")
)

// Position is a cell on the map.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Segment is one body cell. TTL is the number of ticks left before it is dropped.
type Segment struct {
	X   int `json:"x"`
	Y   int `json:"y"`
	TTL int `json:"ttl"`
}

// Config is the parsed form of a configuration string:
//
//	W <width> <height> F <foodX> <foodY> S <U|D|L|R> <length> (<x> <y>){length}
type Config struct {
	Width     int
	Height    int
	Food      Position
	Direction Direction
	Segments  []Segment
}

// ParseConfig parses a configuration string. Segments are listed head first
// and get ttl values length, length-1, ..., 1. Coordinates are not checked
// against the map dimensions.
func ParseConfig(config string) (Config, error) {
	tok := &tokens{fields: strings.Fields(config)}

	var cfg Config
	tok.marker("W")
	cfg.Width = tok.number("width")
	cfg.Height = tok.number("height")
	tok.marker("F")
	cfg.Food.X = tok.number("food x")
	cfg.Food.Y = tok.number("food y")
	tok.marker("S")
	cfg.Direction = tok.direction()
	length := tok.number("length")
	if tok.err != nil {
		return Config{}, tok.err
	}
	if length < 1 {
		return Config{}, fmt.Errorf("%w: snake length %d", ErrConfiguration, length)
	}

	if remaining := (len(tok.fields) - tok.pos) / 2; length > remaining {
		return Config{}, fmt.Errorf("%w: snake length %d but only %d segments given", ErrConfiguration, length, remaining)
	}

	cfg.Segments = make([]Segment, 0, length)
	for ttl := length; ttl > 0; ttl-- {
		seg := Segment{TTL: ttl}
		seg.X = tok.number("segment x")
		seg.Y = tok.number("segment y")
		cfg.Segments = append(cfg.Segments, seg)
	}
	if tok.err != nil {
		return Config{}, tok.err
	}
	return cfg, nil
}

// String renders the configuration back into the textual format.
func (c Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "W %d %d F %d %d S %c %d", c.Width, c.Height, c.Food.X, c.Food.Y, c.Direction.String()[0], len(c.Segments))
	for _, seg := range c.Segments {
		fmt.Fprintf(&b, " %d %d", seg.X, seg.Y)
	}
	return b.String()
}

// tokens reads whitespace separated fields and remembers the first error.
type tokens struct {
	fields []string
	pos    int
	err    error
}

func (t *tokens) next(what string) (string, bool) {
	if t.err != nil {
		return "", false
	}
	if t.pos >= len(t.fields) {
		t.err = fmt.Errorf("%w: missing %s", ErrConfiguration, what)
		return "", false
	}
	f := t.fields[t.pos]
	t.pos++
	return f, true
}

func (t *tokens) marker(want string) {
	f, ok := t.next("marker " + want)
	if ok && f != want {
		t.err = fmt.Errorf("%w: expected marker %q, got %q", ErrConfiguration, want, f)
	}
}

func (t *tokens) number(what string) int {
	f, ok := t.next(what)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(f)
	if err != nil {
		t.err = fmt.Errorf("%w: %s %q is not an integer", ErrConfiguration, what, f)
		return 0
	}
	return v
}

func (t *tokens) direction() Direction {
	f, ok := t.next("direction")
	if !ok {
		return 0
	}
	if len(f) == 1 {
		if d, ok := ParseDirection(f[0]); ok {
			return d
		}
	}
	t.err = fmt.Errorf("%w: unknown direction %q", ErrConfiguration, f)
	return 0
}
