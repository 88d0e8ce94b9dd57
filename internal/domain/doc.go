// Package domain models composite wildfire-risk assessments and the pure
// transforms that produce them.
//
// # Data Sources
//
// Three live feeds contribute to an assessment, each normalized at the adapter
// boundary into one of the records in this package:
//
//   - Current weather (Open-Meteo-style forecast API): humidity, temperature,
//     wind, pressure, visibility, plus a WMO weather code mapped through a
//     fixed code→description table.
//   - Open wildfire events (EONET-style global feed): each event carries one
//     or more geometries with [lon, lat] coordinates and an ISO date.
//   - Satellite vegetation/soil/temperature/burn indices (credential-gated
//     region reductions over a ~5 km buffer around the query point).
//
// A fourth feed, NASA-FIRMS-style thermal hotspot detections, feeds the map
// layer rather than the composite score and is parsed by [ParseHotspots].
//
// # Synthetic Fallbacks
//
// Every feed has a coordinate-seeded synthetic generator (see synthetic.go)
// built on the fract(sin(seed)*10000) transform. The same coordinates always
// yield the same synthetic record, so a full upstream outage still produces a
// deterministic, testable assessment instead of an error.
//
// # Hotspot Detection IDs
//
// Detection IDs are "{date}-{time}-{lat}-{lon}" with coordinates rounded to
// three decimals and the acquisition time zero-padded to HH:MM. IDs are stable
// across repeated polls of the same feed, so callers can deduplicate and diff
// between refreshes. Acquisition times arrive as 3-4 digit HHMM values
// ("930" → "09:30").
//
// # Scoring Model
//
// The deterministic scorer (score.go) is the model's contract, not an
// implementation detail. Weighted terms:
//
//	humidity:    max(0, 100-h) * 0.18
//	wind:        min(w * 1.2, 15)
//	temperature: min(max(0, t-5) * 0.4, 12)
//
// with satellite data:
//
//	vegetation:  (1 - ndvi) * 6
//	soil:        (100 - soilMoisture) * 0.06
//	drought:     drought * 7
//	fire count:  min(fireCount * 2.5, 12)
//
// without satellite data the fire-history term compensates for the missing
// signal category:
//
//	fire score:  min(fireContextScore * 0.25, 25)
//
// The sum is damped by 0.9, rounded, and clamped to [0, 100]. The score→level
// ladder (<36 low, <56 medium, <76 high, ≥76 extreme) is defined once in
// [LevelForScore] and used everywhere a score maps to a level: the scorer,
// the reasoning reconciliation, and the synthetic fallbacks.
package domain
