// Package domain models scored aviation weather reports for the live
// leaderboard.
//
// # Data Source
//
// Report rows originate from the leaderboard backend, which scores raw
// METAR, TAF, and PIREP reports by rarity and returns the top N per product.
// The backend has shipped two payload generations: current responses carry
// the report body in a "text" field, older deployments used a "metar" field.
// Both generations remain in production, so normalization accepts either and
// downstream code only ever sees Row.Text.
//
// # Report Products
//
//	METAR: routine surface observation, keyed by ICAO station identifier.
//	TAF:   terminal aerodrome forecast, keyed by ICAO station identifier.
//	PIREP: pilot weather report. PIREP feeds also contain "ARP" aircraft
//	       position entries, which are not weather reports and are filtered
//	       out before display.
//
// Coordinates are WGS-84. A row is plottable as a map marker only when both
// lat and lon arrived as real JSON numbers; malformed coordinates are dropped
// as a pair rather than coerced.
package domain
