package core

// Request types

type CreateGameRequest struct {
	Position string `json:"position,omitempty" validate:"omitempty,min=41,max=43"` // six rows joined by '/', optional " b" or " w"
}

type MoveRequest struct {
	Row *int `json:"row" validate:"required"` // range is checked by the rules
	Col *int `json:"col" validate:"required"`
}

// Response types

type GameResponse struct {
	GameID     string      `json:"gameId"`
	Position   string      `json:"position"`
	Start      string      `json:"startPosition"` // where the round began
	Board      [6][6]int   `json:"board"` // 0 empty, 1 black, 2 white
	Turn       string      `json:"turn"`  // "black" or "white"
	Phase      string      `json:"phase"`
	Ended      bool        `json:"ended"`
	Message    string      `json:"message"`
	Pass       string      `json:"pass,omitempty"` // color that just passed
	ValidMoves []string    `json:"validMoves"`
	Moves      []string    `json:"moves"`
	Version    int         `json:"version"`
	Round      int         `json:"round"`
	LastMove   *MoveInfo   `json:"lastMove,omitempty"`
	Result     *ResultInfo `json:"result,omitempty"`
}

type MoveInfo struct {
	Move        string   `json:"move"`
	PlayerColor string   `json:"playerColor"`
	Flipped     []string `json:"flipped"`
}

type ResultInfo struct {
	Black   int    `json:"black"`
	White   int    `json:"white"`
	Outcome string `json:"outcome"` // "win", "loss" or "draw" for black
}

// MoveResponse reports whether a human move request was applied
type MoveResponse struct {
	Accepted bool         `json:"accepted"`
	Reason   string       `json:"reason,omitempty"`
	Code     string       `json:"code,omitempty"` // INVALID_MOVE, NOT_HUMAN_TURN or GAME_OVER
	Game     GameResponse `json:"game"`
}

type BoardResponse struct {
	Position string `json:"position"`
	Board    string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
