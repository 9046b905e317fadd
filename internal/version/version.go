// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Political timezones with cached lookups, session persistence, config file
// 0.2.0 - Route drawing and animation, headless --play, crossing log
// 0.1.0 - Initial release: ship's time panel, Date Line alerts, headless summary
