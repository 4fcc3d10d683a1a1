package repositories

import (
	"context"
	"fmt"

	"github.com/hearttiles/server/pkg/game/types"
	"github.com/jackc/pgx/v5"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS rooms (
	code TEXT PRIMARY KEY,
	data JSONB NOT NULL
);
`

type PostgresStore struct {
	conn *pgx.Conn
}

// NewPostgresStore connects to the database and ensures the rooms
// table exists. The caller is responsible for calling Close().
func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("failed to create rooms table: %v", err)
	}

	return &PostgresStore{conn: conn}, nil
}

func (s *PostgresStore) LoadAll(ctx context.Context) ([]*types.Room, error) {
	rows, err := s.conn.Query(ctx, `SELECT data FROM rooms`)
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

func (s *PostgresStore) Upsert(ctx context.Context, room *types.Room) error {
	data, err := EncodeRoom(room)
	if err != nil {
		return err
	}
	q := `
	INSERT INTO rooms (code, data) VALUES ($1, $2)
	ON CONFLICT (code) DO UPDATE SET data = $2;
	`
	if _, err := s.conn.Exec(ctx, q, room.Code, data); err != nil {
		return fmt.Errorf("failed to upsert room: %v", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, code string) error {
	if _, err := s.conn.Exec(ctx, `DELETE FROM rooms WHERE code = $1`, code); err != nil {
		return fmt.Errorf("failed to delete room: %v", err)
	}
	return nil
}

func (s *PostgresStore) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}
