package core

import "fmt"

// Phase is the turn coordinator's state
type Phase int

const (
	PhaseAwaitingHuman Phase = iota
	PhaseAwaitingComputer
	PhasePassing
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingHuman:
		return "awaiting_human"
	case PhaseAwaitingComputer:
		return "awaiting_computer"
	case PhasePassing:
		return "passing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

type Color byte

const (
	ColorBlack Color = iota + 1
	ColorWhite
)

// Fixed seating: the human always plays black
const (
	HumanColor    = ColorBlack
	ComputerColor = ColorWhite
)

func (c Color) String() string {
	switch c {
	case ColorBlack:
		return "black"
	case ColorWhite:
		return "white"
	default:
		return "-"
	}
}

// Opponent returns the other side
func (c Color) Opponent() Color {
	if c == ColorBlack {
		return ColorWhite
	}
	return ColorBlack
}

// ParseColor accepts "b", "black", "w" or "white"
func ParseColor(s string) (Color, error) {
	switch s {
	case "b", "black":
		return ColorBlack, nil
	case "w", "white":
		return ColorWhite, nil
	}
	return 0, fmt.Errorf("invalid color %q: want b or w", s)
}

// Outcome is the final result from black's (the human's) point of view
type Outcome int

const (
	OutcomeWin Outcome = iota + 1
	OutcomeLoss
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeDraw:
		return "draw"
	default:
		return "none"
	}
}

// OutcomeFor compares final stone counts
func OutcomeFor(black, white int) Outcome {
	switch {
	case black > white:
		return OutcomeWin
	case white > black:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}
