// Package repository contains data access logic for the room directory.
// Rooms and buildings are reference data: the scheduling core reads them
// through the schedule.RoomDirectory interface, and administrators edit
// capacity and availability through dedicated methods.
package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/exam-scheduler/internal/model"
    "github.com/iliyamo/exam-scheduler/internal/schedule"
)

// RoomRepo manages persistence for rooms and buildings.  It implements
// schedule.RoomDirectory.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
    return &RoomRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *RoomRepo) DB() *sql.DB {
    return r.db
}

const roomColumns = `r.id, r.building_id, b.code, r.name, r.capacity, r.room_type,
       r.has_projector, r.has_computer, r.has_whiteboard, r.is_available, r.notes, r.created_at`

const roomFrom = ` FROM rooms r JOIN buildings b ON b.id = r.building_id`

func scanRoom(row interface{ Scan(...any) error }) (*model.Room, error) {
    var m model.Room
    err := row.Scan(
        &m.ID, &m.BuildingID, &m.BuildingCode, &m.Name, &m.Capacity, &m.RoomType,
        &m.HasProjector, &m.HasComputer, &m.HasWhiteboard, &m.IsAvailable, &m.Notes, &m.CreatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &m, nil
}

// RoomByID retrieves a room by its ID.  It returns schedule.ErrRoomNotFound
// if there is no matching row.
func (r *RoomRepo) RoomByID(ctx context.Context, id uint64) (*model.Room, error) {
    const q = `SELECT ` + roomColumns + roomFrom + ` WHERE r.id = ?`
    room, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, schedule.ErrRoomNotFound
        }
        return nil, err
    }
    return room, nil
}

// RoomByName resolves a building code and room name pair.  The external
// API accepts human readable room references like "ENG-101" rather than
// surrogate keys, so lookups by name are the normal path for creation
// requests.
func (r *RoomRepo) RoomByName(ctx context.Context, buildingCode, name string) (*model.Room, error) {
    const q = `SELECT ` + roomColumns + roomFrom + ` WHERE b.code = ? AND r.name = ?`
    room, err := scanRoom(r.db.QueryRowContext(ctx, q, buildingCode, name))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, schedule.ErrRoomNotFound
        }
        return nil, err
    }
    return room, nil
}

// AvailableRooms lists every room whose is_available flag is set, ordered
// by building code then room name.
func (r *RoomRepo) AvailableRooms(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT ` + roomColumns + roomFrom + ` WHERE r.is_available = 1 ORDER BY b.code, r.name`
    return r.queryRooms(ctx, q)
}

// RoomFilters narrows the administrative room listing.
type RoomFilters struct {
    BuildingCode string // only rooms in this building
    MinCapacity  uint32 // only rooms with at least this capacity
    Available    *bool  // filter by is_available when non-nil
}

// List returns rooms matching the filters, ordered by building code then
// room name.  When no rooms match it returns an empty slice and nil error.
func (r *RoomRepo) List(ctx context.Context, f RoomFilters) ([]model.Room, error) {
    q := `SELECT ` + roomColumns + roomFrom + ` WHERE 1=1`
    args := make([]any, 0, 3)
    if f.BuildingCode != "" {
        q += ` AND b.code = ?`
        args = append(args, f.BuildingCode)
    }
    if f.MinCapacity > 0 {
        q += ` AND r.capacity >= ?`
        args = append(args, f.MinCapacity)
    }
    if f.Available != nil {
        q += ` AND r.is_available = ?`
        args = append(args, *f.Available)
    }
    q += ` ORDER BY b.code, r.name`
    return r.queryRooms(ctx, q, args...)
}

func (r *RoomRepo) queryRooms(ctx context.Context, q string, args ...any) ([]model.Room, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    result := make([]model.Room, 0)
    for rows.Next() {
        room, err := scanRoom(rows)
        if err != nil {
            return nil, err
        }
        result = append(result, *room)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return result, nil
}

// Create inserts a new room and assigns the generated ID back to the
// struct.  Used by the administrative API and the CSV seeder.
func (r *RoomRepo) Create(ctx context.Context, m *model.Room) error {
    const q = `INSERT INTO rooms (building_id, name, capacity, room_type, has_projector, has_computer, has_whiteboard, is_available, notes)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        m.BuildingID, m.Name, m.Capacity, m.RoomType,
        m.HasProjector, m.HasComputer, m.HasWhiteboard, m.IsAvailable, m.Notes,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    return nil
}

// UpdateAdmin applies an administrator's capacity/availability/notes edit.
// Only non-nil fields are changed; identity fields (building, name) are
// immutable once the room exists.  It returns schedule.ErrRoomNotFound
// when the room does not exist.
func (r *RoomRepo) UpdateAdmin(ctx context.Context, id uint64, capacity *uint32, isAvailable *bool, notes *string) error {
    cur, err := r.RoomByID(ctx, id)
    if err != nil {
        return err
    }
    newCapacity := cur.Capacity
    if capacity != nil {
        newCapacity = *capacity
    }
    newAvailable := cur.IsAvailable
    if isAvailable != nil {
        newAvailable = *isAvailable
    }
    newNotes := cur.Notes
    if notes != nil {
        newNotes = *notes
    }
    const q = `UPDATE rooms SET capacity = ?, is_available = ?, notes = ? WHERE id = ?`
    _, err = r.db.ExecContext(ctx, q, newCapacity, newAvailable, newNotes, id)
    return err
}

// EnsureBuilding returns the ID of the building with the given code,
// creating the row when it does not exist yet.  The seeder relies on this
// to make CSV imports idempotent.
func (r *RoomRepo) EnsureBuilding(ctx context.Context, code, name, address string) (uint64, error) {
    var id uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM buildings WHERE code = ?`, code).Scan(&id)
    if err == nil {
        return id, nil
    }
    if !errors.Is(err, sql.ErrNoRows) {
        return 0, err
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO buildings (code, name, address) VALUES (?, ?, ?)`, code, name, address)
    if err != nil {
        return 0, err
    }
    newID, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(newID), nil
}
