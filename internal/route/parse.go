package route

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/litescript/ls-shiptime/internal/geo"
)

// ParseWaypoints parses a comma-separated waypoint list. Each item is
// either "lng" (latitude 0) or "lat:lng". Longitudes may be in display
// range, e.g. "170,190" crosses the Date Line eastward.
func ParseWaypoints(s string) ([]geo.Waypoint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var wps []geo.Waypoint
	for i, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		var wp geo.Waypoint
		latStr, lngStr, hasLat := strings.Cut(item, ":")
		if !hasLat {
			lngStr = latStr
			latStr = ""
		}

		lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: parse longitude %q: %w", i+1, lngStr, err)
		}
		wp.Lng = lng

		if hasLat {
			lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
			if err != nil {
				return nil, fmt.Errorf("waypoint %d: parse latitude %q: %w", i+1, latStr, err)
			}
			wp.Lat = lat
		}

		wps = append(wps, wp)
	}
	return wps, nil
}

// FormatWaypoints is the inverse of ParseWaypoints.
func FormatWaypoints(wps []geo.Waypoint) string {
	parts := make([]string, len(wps))
	for i, wp := range wps {
		parts[i] = strconv.FormatFloat(wp.Lat, 'f', -1, 64) + ":" + strconv.FormatFloat(wp.Lng, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
