package storage

import (
	"database/sql"
	"fmt"
)

// QueryRounds lists archived rounds, newest first. An empty or "*" session ID matches all.
func (s *Store) QueryRounds(sessionID string) ([]RoundSummary, error) {
	query := `SELECT
		r.session_id, r.round, r.initial_position, r.start_time_utc,
		(SELECT COUNT(*) FROM moves m WHERE m.session_id = r.session_id AND m.round = r.round),
		res.black_count, res.white_count, res.outcome, res.end_time_utc
	FROM rounds r
	LEFT JOIN results res ON res.session_id = r.session_id AND res.round = r.round
	WHERE 1=1`

	var args []interface{}
	if sessionID != "" && sessionID != "*" {
		query += " AND r.session_id = ?"
		args = append(args, sessionID)
	}
	query += " ORDER BY r.start_time_utc DESC, r.round DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var rounds []RoundSummary
	for rows.Next() {
		var (
			rs      RoundSummary
			black   sql.NullInt64
			white   sql.NullInt64
			outcome sql.NullString
			ended   sql.NullTime
		)
		err := rows.Scan(
			&rs.SessionID, &rs.Round, &rs.InitialPosition, &rs.StartTimeUTC,
			&rs.MoveCount,
			&black, &white, &outcome, &ended,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if outcome.Valid {
			rs.Result = &ResultRecord{
				SessionID:  rs.SessionID,
				Round:      rs.Round,
				BlackCount: int(black.Int64),
				WhiteCount: int(white.Int64),
				Outcome:    outcome.String,
				EndTimeUTC: ended.Time,
			}
		}
		rounds = append(rounds, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return rounds, nil
}

// QueryMoves returns one round's record in play order
func (s *Store) QueryMoves(sessionID string, round int) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT
		move_id, session_id, round, move_number, move, row, col,
		player_color, flip_count, position_after, move_time_utc
	FROM moves WHERE session_id = ? AND round = ?
	ORDER BY move_number`, sessionID, round)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(
			&m.MoveID, &m.SessionID, &m.Round, &m.MoveNumber, &m.Move, &m.Row, &m.Col,
			&m.PlayerColor, &m.FlipCount, &m.PositionAfter, &m.MoveTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}
