package middleware

// Response cache for the read endpoints.  Exam, room and roster listings
// are visibility scoped: a student must never be served a list produced
// for an admin or for another department.  The cache key therefore
// always carries the resolved principal, and the middleware has to be
// registered inside the authenticated route groups behind LoadUser — a
// request with no resolved user is never served from or written to the
// cache.

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/exam-scheduler/internal/config"
)

// responseRecorder tees the response to the client while keeping a copy
// for the cache, truncated at limit bytes.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
	seen   int64
	limit  int64
}

func (w *responseRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	if remain := w.limit - w.seen; remain > 0 {
		if int64(len(b)) <= remain {
			w.body.Write(b)
		} else {
			w.body.Write(b[:remain])
		}
	}
	w.seen += int64(len(b))
	return w.ResponseWriter.Write(b)
}

// cacheKeyFor derives the Redis key for the request.  The digest covers
// the user's id and role together with method, route and query, so a hit
// can only replay a response produced for the same principal asking the
// same question.  It reports false when LoadUser has not resolved a user.
func cacheKeyFor(prefix string, c echo.Context) (string, bool) {
	u := CurrentUser(c)
	if u == nil {
		return "", false
	}
	r := c.Request()
	raw := strings.Join([]string{
		strconv.FormatUint(u.ID, 10),
		u.Role,
		r.Method,
		c.Path(),
		r.URL.RawQuery,
	}, "\x00")
	sum := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s:u%d:%x", prefix, u.ID, sum[:16]), true
}

// Cached payload layout: status (4 bytes) | header length (4 bytes) |
// header JSON | body.  Headers are stored so a hit reproduces the exact
// bytes of the original response.

func encodeCached(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodeCached(raw []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(raw) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(raw[0:4]))
	hlen := int(binary.BigEndian.Uint32(raw[4:8]))
	if hlen < 0 || 8+hlen > len(raw) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(raw[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, raw[8+hlen:], true
}

// NewRedisCache returns middleware that serves successful GET and HEAD
// responses from Redis for cfg.TTL.  With caching disabled or no Redis
// client it degrades to pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	limit := int64(cfg.MaxBodyBytes)
	if limit <= 0 {
		limit = 1 << 20
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m := c.Request().Method; m != http.MethodGet && m != http.MethodHead {
				return next(c)
			}
			key, ok := cacheKeyFor(cfg.Prefix, c)
			if !ok {
				return next(c)
			}

			ctx := c.Request().Context()
			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodeCached(raw); ok {
					h := c.Response().Header()
					for k, vals := range hdr {
						if strings.EqualFold(k, "Content-Length") {
							continue
						}
						for _, v := range vals {
							h.Add(k, v)
						}
					}
					h.Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					if len(body) > 0 {
						_, _ = c.Response().Write(body)
					}
					return nil
				}
			}

			rec := &responseRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: limit}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")
			if err := next(c); err != nil {
				return err
			}

			if rec.status != http.StatusOK || rec.seen > limit {
				return nil
			}
			hdr := make(http.Header, len(c.Response().Header()))
			for k, vals := range c.Response().Header() {
				hdr[k] = append([]string(nil), vals...)
			}
			if payload, err := encodeCached(rec.status, hdr, rec.body.Bytes()); err == nil {
				_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
			}
			return nil
		}
	}
}
