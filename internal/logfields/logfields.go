package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyProfile    = "profile"
	KeyVersion    = "version"
	KeySnapshotID = "snapshot_id"
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyExtension  = "extension"
	KeyRule       = "rule"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Profile(name string) slog.Attr      { return slog.String(KeyProfile, name) }
func Version(v string) slog.Attr         { return slog.String(KeyVersion, v) }
func SnapshotID(id string) slog.Attr     { return slog.String(KeySnapshotID, id) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr          { return slog.String(KeyFormat, f) }
func Extension(id string) slog.Attr      { return slog.String(KeyExtension, id) }
func Rule(name string) slog.Attr         { return slog.String(KeyRule, name) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func Duration(d time.Duration) slog.Attr { return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
