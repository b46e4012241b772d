// Package directory provides caching decorators for the room and course
// read models.  Rooms and courses are reference data that change rarely but
// are consulted on every validation and availability scan, so lookups are
// memoized in an in-process cache with a short TTL.
package directory

import (
    "context"
    "fmt"
    "time"

    gocache "github.com/patrickmn/go-cache"

    "github.com/iliyamo/exam-scheduler/internal/model"
    "github.com/iliyamo/exam-scheduler/internal/schedule"
)

// DefaultTTL bounds how stale a cached directory entry may get.  Admin
// edits call Invalidate, so the TTL only covers out-of-band DB changes.
const DefaultTTL = 30 * time.Second

const availableRoomsKey = "rooms:available"

// CachedRooms decorates a schedule.RoomDirectory with an in-process cache.
type CachedRooms struct {
    next  schedule.RoomDirectory
    cache *gocache.Cache
}

// NewCachedRooms wraps next with a cache using the given TTL.
func NewCachedRooms(next schedule.RoomDirectory, ttl time.Duration) *CachedRooms {
    if ttl <= 0 {
        ttl = DefaultTTL
    }
    return &CachedRooms{
        next:  next,
        cache: gocache.New(ttl, 2*ttl),
    }
}

// RoomByID returns the cached room or falls through to the wrapped
// directory.  Lookup misses (ErrRoomNotFound) are not cached so that a
// freshly created room becomes visible immediately.
func (c *CachedRooms) RoomByID(ctx context.Context, id uint64) (*model.Room, error) {
    key := fmt.Sprintf("room:%d", id)
    if v, ok := c.cache.Get(key); ok {
        r := v.(model.Room)
        return &r, nil
    }
    room, err := c.next.RoomByID(ctx, id)
    if err != nil {
        return nil, err
    }
    c.cache.SetDefault(key, *room)
    return room, nil
}

// RoomByName resolves a building code + room name pair through the cache.
func (c *CachedRooms) RoomByName(ctx context.Context, buildingCode, name string) (*model.Room, error) {
    key := fmt.Sprintf("room:name:%s:%s", buildingCode, name)
    if v, ok := c.cache.Get(key); ok {
        r := v.(model.Room)
        return &r, nil
    }
    room, err := c.next.RoomByName(ctx, buildingCode, name)
    if err != nil {
        return nil, err
    }
    c.cache.SetDefault(key, *room)
    c.cache.SetDefault(fmt.Sprintf("room:%d", room.ID), *room)
    return room, nil
}

// AvailableRooms returns the cached availability listing or reloads it.
func (c *CachedRooms) AvailableRooms(ctx context.Context) ([]model.Room, error) {
    if v, ok := c.cache.Get(availableRoomsKey); ok {
        return v.([]model.Room), nil
    }
    rooms, err := c.next.AvailableRooms(ctx)
    if err != nil {
        return nil, err
    }
    c.cache.SetDefault(availableRoomsKey, rooms)
    return rooms, nil
}

// Invalidate drops every cached entry.  Called after an administrator
// edits room capacity or availability.
func (c *CachedRooms) Invalidate() {
    c.cache.Flush()
}

// CachedCourses decorates a schedule.CourseDirectory with an in-process
// cache, mirroring CachedRooms.
type CachedCourses struct {
    next  schedule.CourseDirectory
    cache *gocache.Cache
}

// NewCachedCourses wraps next with a cache using the given TTL.
func NewCachedCourses(next schedule.CourseDirectory, ttl time.Duration) *CachedCourses {
    if ttl <= 0 {
        ttl = DefaultTTL
    }
    return &CachedCourses{
        next:  next,
        cache: gocache.New(ttl, 2*ttl),
    }
}

// CourseByID returns the cached course or falls through to the wrapped
// directory.
func (c *CachedCourses) CourseByID(ctx context.Context, id uint64) (*model.Course, error) {
    key := fmt.Sprintf("course:%d", id)
    if v, ok := c.cache.Get(key); ok {
        course := v.(model.Course)
        return &course, nil
    }
    course, err := c.next.CourseByID(ctx, id)
    if err != nil {
        return nil, err
    }
    c.cache.SetDefault(key, *course)
    return course, nil
}

// CourseByCode resolves a course code through the cache.
func (c *CachedCourses) CourseByCode(ctx context.Context, code string) (*model.Course, error) {
    key := "course:code:" + code
    if v, ok := c.cache.Get(key); ok {
        course := v.(model.Course)
        return &course, nil
    }
    course, err := c.next.CourseByCode(ctx, code)
    if err != nil {
        return nil, err
    }
    c.cache.SetDefault(key, *course)
    c.cache.SetDefault(fmt.Sprintf("course:%d", course.ID), *course)
    return course, nil
}

// Invalidate drops every cached course entry.
func (c *CachedCourses) Invalidate() {
    c.cache.Flush()
}
