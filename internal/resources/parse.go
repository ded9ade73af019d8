// Package resources parses human-entered resource quantities into the units
// the process filters compare against.
package resources

import (
	"fmt"
	"strconv"
	"strings"

	units "github.com/docker/go-units"
)

// ParseCPU converts a textual CPU quantity into a core count. Fractional
// cores ("0.5") and millicores ("500m") are both accepted. An empty value
// means no threshold and parses to zero.
func ParseCPU(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}

	var cores float64
	var err error
	if strings.HasSuffix(trimmed, "m") || strings.HasSuffix(trimmed, "M") {
		milli := strings.TrimSpace(trimmed[:len(trimmed)-1])
		if milli == "" {
			return 0, fmt.Errorf("invalid cpu quantity %q", value)
		}
		var milliVal float64
		milliVal, err = strconv.ParseFloat(milli, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid cpu quantity %q: %w", value, err)
		}
		cores = milliVal / 1000.0
	} else {
		cores, err = strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid cpu quantity %q: %w", value, err)
		}
	}
	if cores <= 0 {
		return 0, fmt.Errorf("invalid cpu quantity %q: must be positive", value)
	}
	return cores, nil
}

// ParseMemory converts textual sizes like "512Mi" or "1GiB" into bytes. The
// bare Kubernetes-style suffixes ("Ki", "Mi") are normalized to the binary
// forms go-units understands. An empty value means no threshold and parses
// to zero.
func ParseMemory(value string) (uint64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasSuffix(lower, "kib"), strings.HasSuffix(lower, "mib"), strings.HasSuffix(lower, "gib"), strings.HasSuffix(lower, "tib"), strings.HasSuffix(lower, "pib"), strings.HasSuffix(lower, "eib"):
		// already in binary units understood by go-units
	case strings.HasSuffix(lower, "ki"), strings.HasSuffix(lower, "mi"), strings.HasSuffix(lower, "gi"), strings.HasSuffix(lower, "ti"), strings.HasSuffix(lower, "pi"), strings.HasSuffix(lower, "ei"):
		trimmed += "B"
	}
	bytes, err := units.RAMInBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid memory quantity %q: %w", value, err)
	}
	if bytes <= 0 {
		return 0, fmt.Errorf("invalid memory quantity %q: must be positive", value)
	}
	return uint64(bytes), nil
}
