package tz

// zoneRule is a lat/lng box mapped to a zone. Boxes are inclusive.
type zoneRule struct {
	minLat, maxLat float64
	minLng, maxLng float64
	zone           string
}

func (r zoneRule) contains(lat, lng float64) bool {
	return lat >= r.minLat && lat <= r.maxLat && lng >= r.minLng && lng <= r.maxLng
}

// zoneRules are checked in order; smaller regions come before the larger
// regions that enclose them.
var zoneRules = []zoneRule{
	// North America
	{46.5, 52, -60, -52.5, "America/St_Johns"},
	{18, 23, -161, -154, "Pacific/Honolulu"},
	{51, 72, -170, -129, "America/Anchorage"},
	{24, 50, -82.5, -66, "America/New_York"},
	{24, 50, -97.5, -82.5, "America/Chicago"},
	{24, 50, -112.5, -97.5, "America/Denver"},
	{24, 50, -125, -112.5, "America/Los_Angeles"},
	{43, 60, -67, -52.5, "America/Halifax"},
	{14, 24, -118, -86, "America/Mexico_City"},

	// South America
	{-5, 12, -80, -66, "America/Bogota"},
	{-18, -5, -82, -68, "America/Lima"},
	{-56, -18, -76, -68, "America/Santiago"},
	{-55, -22, -68, -53, "America/Argentina/Buenos_Aires"},
	{-34, 5, -74, -34, "America/Sao_Paulo"},

	// Europe
	{36, 42.5, -10, -6, "Europe/Lisbon"},
	{49.5, 61, -11, 2, "Europe/London"},
	{36, 71, -6, 20, "Europe/Paris"},
	{36, 71, 20, 30, "Europe/Helsinki"},
	{40, 70, 30, 50, "Europe/Moscow"},

	// Africa and the Middle East
	{22, 32, 24.5, 36, "Africa/Cairo"},
	{4, 20, -17, 15, "Africa/Lagos"},
	{-35, -22, 16, 33, "Africa/Johannesburg"},
	{-12, 5, 33, 42, "Africa/Nairobi"},
	{25, 40, 44, 63, "Asia/Tehran"},
	{22, 26.5, 51, 57, "Asia/Dubai"},

	// South and East Asia
	{26.3, 30.5, 80, 88.2, "Asia/Kathmandu"},
	{20.5, 26.7, 88.2, 92.7, "Asia/Dhaka"},
	{23.5, 37, 61, 75, "Asia/Karachi"},
	{6, 35.5, 68, 97.5, "Asia/Kolkata"},
	{9.5, 28.5, 92.2, 101.2, "Asia/Yangon"},
	{5, 20.5, 97.5, 106, "Asia/Bangkok"},
	{30, 46, 129, 146, "Asia/Tokyo"},
	{18, 53.5, 73.5, 135, "Asia/Shanghai"},

	// Oceania
	{-35.5, -11, 113, 129, "Australia/Perth"},
	{-26, -11, 129, 138, "Australia/Darwin"},
	{-38.1, -26, 129, 141, "Australia/Adelaide"},
	{-44, -10, 141, 154, "Australia/Sydney"},
	{-47.5, -34, 166, 179, "Pacific/Auckland"},
}

// RuleLookup is an offline, rule-based Lookup. It covers major land masses
// with rough boxes; open ocean and unmapped regions return ErrNoZone.
type RuleLookup struct{}

// Zone implements Lookup.
func (RuleLookup) Zone(lat, lng float64) (string, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return "", ErrNoZone
	}
	for _, r := range zoneRules {
		if r.contains(lat, lng) {
			return r.zone, nil
		}
	}
	return "", ErrNoZone
}
