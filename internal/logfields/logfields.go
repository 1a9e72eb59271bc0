// Package logfields holds the canonical slog attribute names used by exportreadme.
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID        = "run_id"
	KeyInput        = "input"
	KeyOutput       = "output"
	KeyPath         = "path"
	KeyTargetPrefix = "target_prefix"
	KeyKind         = "kind"
	KeyAttribute    = "attribute"
	KeyDestination  = "destination"
	KeyRewritten    = "rewritten"
	KeyKept         = "kept"
	KeyDurationMS   = "duration_ms"
	KeyError        = "error"
)

func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Input(p string) slog.Attr        { return slog.String(KeyInput, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func TargetPrefix(p string) slog.Attr { return slog.String(KeyTargetPrefix, p) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Attribute(a string) slog.Attr    { return slog.String(KeyAttribute, a) }
func Destination(d string) slog.Attr  { return slog.String(KeyDestination, d) }
func Rewritten(n int) slog.Attr       { return slog.Int(KeyRewritten, n) }
func Kept(n int) slog.Attr            { return slog.Int(KeyKept, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Duration reports d in milliseconds under KeyDurationMS.
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d.Microseconds()) / 1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
