package storage

import "time"

// RoundRecord represents a row in the rounds table
type RoundRecord struct {
	SessionID       string    `db:"session_id"`
	Round           int       `db:"round"`
	InitialPosition string    `db:"initial_position"`
	StartTimeUTC    time.Time `db:"start_time_utc"`
}

// MoveRecord represents a row in the moves table; passes have Row and Col -1
type MoveRecord struct {
	MoveID        int64     `db:"move_id"`
	SessionID     string    `db:"session_id"`
	Round         int       `db:"round"`
	MoveNumber    int       `db:"move_number"`
	Move          string    `db:"move"` // "c2" or "pass"
	Row           int       `db:"row"`
	Col           int       `db:"col"`
	PlayerColor   string    `db:"player_color"` // "b" or "w"
	FlipCount     int       `db:"flip_count"`
	PositionAfter string    `db:"position_after"`
	MoveTimeUTC   time.Time `db:"move_time_utc"`
}

// ResultRecord represents a row in the results table
type ResultRecord struct {
	SessionID  string    `db:"session_id"`
	Round      int       `db:"round"`
	BlackCount int       `db:"black_count"`
	WhiteCount int       `db:"white_count"`
	Outcome    string    `db:"outcome"`
	EndTimeUTC time.Time `db:"end_time_utc"`
}

// RoundSummary joins a round with its move count and result, if finished
type RoundSummary struct {
	RoundRecord
	MoveCount int
	Result    *ResultRecord
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS rounds (
	session_id TEXT NOT NULL,
	round INTEGER NOT NULL,
	initial_position TEXT NOT NULL,
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (session_id, round)
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	round INTEGER NOT NULL,
	move_number INTEGER NOT NULL,
	move TEXT NOT NULL,
	row INTEGER NOT NULL,
	col INTEGER NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('b', 'w')),
	flip_count INTEGER NOT NULL DEFAULT 0,
	position_after TEXT NOT NULL,
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (session_id, round) REFERENCES rounds(session_id, round) ON DELETE CASCADE,
	UNIQUE(session_id, round, move_number)
);

CREATE TABLE IF NOT EXISTS results (
	session_id TEXT NOT NULL,
	round INTEGER NOT NULL,
	black_count INTEGER NOT NULL,
	white_count INTEGER NOT NULL,
	outcome TEXT NOT NULL CHECK(outcome IN ('win', 'loss', 'draw')),
	end_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (session_id, round),
	FOREIGN KEY (session_id, round) REFERENCES rounds(session_id, round) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_moves_session ON moves(session_id, round);
CREATE INDEX IF NOT EXISTS idx_rounds_start ON rounds(start_time_utc);
`
