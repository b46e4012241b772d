package model

import "time"

// Building represents a campus building that contains schedulable
// rooms.  Buildings are reference data maintained by administrators
// and are never deleted while rooms point at them.  This struct
// corresponds to a row in the `buildings` table.
//
// Fields:
//  ID        – primary key identifier.
//  Code      – unique short code of the building (e.g. "ENG").
//  Name      – human readable building name.
//  Address   – optional postal address.
//  CreatedAt – timestamp when the building was created.
type Building struct {
    ID        uint64    `json:"id"`         // buildings.id
    Code      string    `json:"code"`       // buildings.code
    Name      string    `json:"name"`       // buildings.name
    Address   string    `json:"address"`    // buildings.address
    CreatedAt time.Time `json:"created_at"` // buildings.created_at
}

// Room describes a physical room in which exams can be scheduled.
// Rooms are uniquely identified by their building and name.  The
// capacity bounds how many students an exam placed in the room may
// admit, and is_available removes a room from availability scans
// without deleting its history.
//
// Fields:
//  ID            – primary key identifier.
//  BuildingID    – building to which this room belongs.
//  BuildingCode  – code of the owning building (joined, read only).
//  Name          – room name, unique per building.
//  Capacity      – number of seats in the room; always positive.
//  RoomType      – kind of room (classroom, lab, amphitheater, conference).
//  HasProjector  – whether the room has a projector.
//  HasComputer   – whether the room has computers.
//  HasWhiteboard – whether the room has a whiteboard.
//  IsAvailable   – whether the room participates in scheduling.
//  Notes         – free text notes for administrators.
//  CreatedAt     – creation timestamp.
type Room struct {
    ID            uint64    `json:"id"`             // rooms.id
    BuildingID    uint64    `json:"building_id"`    // rooms.building_id
    BuildingCode  string    `json:"building_code"`  // buildings.code (joined)
    Name          string    `json:"name"`           // rooms.name
    Capacity      uint32    `json:"capacity"`       // rooms.capacity
    RoomType      string    `json:"room_type"`      // rooms.room_type
    HasProjector  bool      `json:"has_projector"`  // rooms.has_projector
    HasComputer   bool      `json:"has_computer"`   // rooms.has_computer
    HasWhiteboard bool      `json:"has_whiteboard"` // rooms.has_whiteboard
    IsAvailable   bool      `json:"is_available"`   // rooms.is_available
    Notes         string    `json:"notes"`          // rooms.notes
    CreatedAt     time.Time `json:"created_at"`     // rooms.created_at
}

// FullName returns the conventional display name of the room,
// composed of the building code and the room name (e.g. "ENG-101").
func (r *Room) FullName() string {
    return r.BuildingCode + "-" + r.Name
}
