package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hearttiles/server/pkg/game/types"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS rooms (
	code TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create rooms table: %v", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) LoadAll(ctx context.Context) ([]*types.Room, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM rooms;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %v", err)
	}
	defer rows.Close()

	var rooms []*types.Room
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan room: %v", err)
		}
		room, err := DecodeRoom(data)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (s *SQLiteStore) Upsert(ctx context.Context, room *types.Room) error {
	data, err := EncodeRoom(room)
	if err != nil {
		return err
	}
	q := `INSERT OR REPLACE INTO rooms (code, data) VALUES (?, ?);`
	if _, err := s.db.ExecContext(ctx, q, room.Code, data); err != nil {
		return fmt.Errorf("failed to upsert room: %v", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, code string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE code = ?;`, code); err != nil {
		return fmt.Errorf("failed to delete room: %v", err)
	}
	return nil
}

func (s *SQLiteStore) Close(ctx context.Context) error {
	return s.db.Close()
}
