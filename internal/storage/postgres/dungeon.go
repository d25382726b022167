package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/dungeongen/internal/dungeon"
	"github.com/cory-johannsen/dungeongen/internal/export"
)

// ErrDungeonNotFound is returned when a dungeon lookup yields no results.
var ErrDungeonNotFound = errors.New("dungeon not found")

// DungeonRecord is a stored dungeon and the parameters it was generated from.
type DungeonRecord struct {
	ID            uuid.UUID
	Params        dungeon.Params
	RoomCount     int
	CorridorCount int
	CreatedAt     time.Time
	// Dungeon is nil on records returned by ListRecent.
	Dungeon *dungeon.Dungeon
}

// DungeonRepository provides dungeon persistence operations.
type DungeonRepository struct {
	db *pgxpool.Pool
}

// NewDungeonRepository creates a DungeonRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewDungeonRepository(db *pgxpool.Pool) *DungeonRepository {
	return &DungeonRepository{db: db}
}

// Create stores d together with the parameters that produced it. The seed
// and dimensions recorded are d's own, so a zero seed or even dimension in
// p is stored as the value actually used.
//
// Precondition: d must be non-nil.
// Postcondition: Returns the stored record with ID and CreatedAt set.
func (r *DungeonRepository) Create(ctx context.Context, p dungeon.Params, d *dungeon.Dungeon) (DungeonRecord, error) {
	doc, err := export.MarshalJSON(d)
	if err != nil {
		return DungeonRecord{}, err
	}

	rec := DungeonRecord{
		ID:            uuid.New(),
		Params:        p,
		RoomCount:     d.RoomCount(),
		CorridorCount: len(d.Corridors()),
		Dungeon:       d,
	}
	rec.Params.Seed = d.Seed()
	rec.Params.Width = d.Width()
	rec.Params.Depth = d.Depth()

	err = r.db.QueryRow(ctx,
		`INSERT INTO dungeons (id, seed, width, depth, entrance_size, min_room_size, max_room_size,
		                       tries, extra_corridor_chance, room_count, corridor_count, document)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at`,
		rec.ID, rec.Params.Seed, rec.Params.Width, rec.Params.Depth, rec.Params.EntranceSize,
		rec.Params.MinRoomSize, rec.Params.MaxRoomSize, rec.Params.Tries, rec.Params.ExtraCorridorChance,
		rec.RoomCount, rec.CorridorCount, doc,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return DungeonRecord{}, fmt.Errorf("inserting dungeon: %w", err)
	}
	return rec, nil
}

// GetByID retrieves a stored dungeon and rebuilds it from its document.
//
// Postcondition: Returns the record or ErrDungeonNotFound.
func (r *DungeonRepository) GetByID(ctx context.Context, id uuid.UUID) (DungeonRecord, error) {
	var (
		rec DungeonRecord
		doc []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, seed, width, depth, entrance_size, min_room_size, max_room_size, tries,
		        extra_corridor_chance, room_count, corridor_count, created_at, document
		 FROM dungeons WHERE id = $1`,
		id,
	).Scan(append(summaryDest(&rec), &doc)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DungeonRecord{}, ErrDungeonNotFound
		}
		return DungeonRecord{}, fmt.Errorf("querying dungeon %s: %w", id, err)
	}

	rec.Dungeon, err = export.UnmarshalJSON(doc)
	if err != nil {
		return DungeonRecord{}, fmt.Errorf("restoring dungeon %s: %w", id, err)
	}
	return rec, nil
}

// ListRecent returns up to limit records, newest first, without their dungeons.
//
// Precondition: limit must be > 0.
func (r *DungeonRepository) ListRecent(ctx context.Context, limit int) ([]DungeonRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, seed, width, depth, entrance_size, min_room_size, max_room_size, tries,
		        extra_corridor_chance, room_count, corridor_count, created_at
		 FROM dungeons ORDER BY created_at DESC, id LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing dungeons: %w", err)
	}
	defer rows.Close()

	var out []DungeonRecord
	for rows.Next() {
		var rec DungeonRecord
		if err := rows.Scan(summaryDest(&rec)...); err != nil {
			return nil, fmt.Errorf("scanning dungeon: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing dungeons: %w", err)
	}
	return out, nil
}

// Delete removes a stored dungeon.
//
// Postcondition: Returns nil, or ErrDungeonNotFound if no row matched.
func (r *DungeonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dungeons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting dungeon %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDungeonNotFound
	}
	return nil
}

// summaryDest lists the scan targets of the summary columns in SELECT order.
func summaryDest(rec *DungeonRecord) []any {
	return []any{
		&rec.ID, &rec.Params.Seed, &rec.Params.Width, &rec.Params.Depth, &rec.Params.EntranceSize,
		&rec.Params.MinRoomSize, &rec.Params.MaxRoomSize, &rec.Params.Tries,
		&rec.Params.ExtraCorridorChance, &rec.RoomCount, &rec.CorridorCount, &rec.CreatedAt,
	}
}
