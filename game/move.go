package game

import (
	"fmt"
	"strings"
)

type Move int

const (
	Up Move = iota
	Down
	Left
	Right
)

// Moves lists every move in canonical order.
var Moves = []Move{Up, Down, Left, Right}

func (m Move) String() string {
	switch m {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("Move(%d)", int(m))
	}
}

func ParseMove(s string) (Move, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP", "W":
		return Up, nil
	case "DOWN", "S":
		return Down, nil
	case "LEFT", "A":
		return Left, nil
	case "RIGHT", "D":
		return Right, nil
	default:
		return 0, fmt.Errorf("unknown move %q", s)
	}
}

func (m Move) MarshalText() ([]byte, error) {
	if m < Up || m > Right {
		return nil, fmt.Errorf("invalid move %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
