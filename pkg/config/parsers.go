package config

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// parseDurationLoose parses either a Go duration string ("500ms") or a bare
// number of seconds, matching Duration's own YAML unmarshaling so env
// overrides accept the same syntax as the file.
func parseDurationLoose(raw string) (Duration, error) {
	if td, err := time.ParseDuration(raw); err == nil {
		return Duration(td), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return Duration(time.Duration(f * float64(time.Second))), nil
}

// parseSizeLoose parses either a human-friendly byte size ("512MB") or a
// bare integer byte count, matching SizeBytes's own YAML unmarshaling so
// env overrides accept the same syntax as the file.
func parseSizeLoose(raw string) (SizeBytes, error) {
	if v, err := humanize.ParseBytes(raw); err == nil {
		return SizeBytes(v), nil
	}
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return SizeBytes(i), nil
}
