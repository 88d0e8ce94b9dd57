package domain

import (
	"errors"
	"math"
	"sort"
	"time"
)

// Correlation scoring constants. Proximity is concave (exponent < 1) so
// very-close events count disproportionately while mid-range distances
// saturate; density is linear with a hard cap so a large cluster cannot
// dominate; recency decays to zero within ~33 days.
const (
	DefaultSearchRadiusKm = 500.0

	proximityMax      = 35.0
	proximityExponent = 0.85
	densityMax        = 30.0
	densityPerEvent   = 6.0
	recencyMax        = 20.0
	recencyDecayPerDay = 0.6

	// correlationDamping shrinks the combined raw score before it feeds the
	// risk scorer, so one noisy high-weight source cannot saturate it.
	correlationDamping = 0.85
)

// ErrNoFireContext signals that no event from the global feed falls within
// the search radius. Callers substitute the synthetic fire fallback.
var ErrNoFireContext = errors.New("no correlated fire context")

// FireContext is the location-relevant signal distilled from the global event
// feed: the nearby events sorted by distance plus the three component scores.
type FireContext struct {
	Nearby     []WildfireEvent // ascending by distance from the query point
	MostRecent *time.Time      // latest parseable date among nearby events

	ProximityScore float64
	DensityScore   float64
	RecencyScore   float64

	// Score is the damped sum of the three components, 0-100 domain.
	Score float64
}

// Correlate filters a global event list down to the search radius around
// (lat, lon) and scores proximity, density, and recency. Returns
// ErrNoFireContext when nothing falls inside the radius.
func Correlate(lat, lon float64, events []WildfireEvent, radiusKm float64) (FireContext, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}

	type scored struct {
		event    WildfireEvent
		distance float64
	}

	nearby := make([]scored, 0, len(events))
	for _, e := range events {
		d := DistanceKm(lat, lon, e.Lat, e.Lon)
		if d <= radiusKm {
			nearby = append(nearby, scored{event: e, distance: d})
		}
	}
	if len(nearby) == 0 {
		return FireContext{}, ErrNoFireContext
	}

	sort.Slice(nearby, func(i, j int) bool { return nearby[i].distance < nearby[j].distance })

	ctx := FireContext{Nearby: make([]WildfireEvent, len(nearby))}
	for i, s := range nearby {
		ctx.Nearby[i] = s.event
		if !s.event.Date.IsZero() && (ctx.MostRecent == nil || s.event.Date.After(*ctx.MostRecent)) {
			d := s.event.Date
			ctx.MostRecent = &d
		}
	}

	nearest := nearby[0].distance
	ctx.ProximityScore = math.Pow(math.Max(0, 1-nearest/radiusKm), proximityExponent) * proximityMax
	ctx.DensityScore = math.Min(densityMax, float64(len(nearby))*densityPerEvent)

	if ctx.MostRecent != nil {
		days := clock.Now().Sub(*ctx.MostRecent).Hours() / 24
		ctx.RecencyScore = math.Max(0, recencyMax-days*recencyDecayPerDay)
	}

	ctx.Score = (ctx.ProximityScore + ctx.DensityScore + ctx.RecencyScore) * correlationDamping
	return ctx, nil
}

// FireRiskFromContext converts a correlation result into the fire-context
// record the scorer consumes. totalEvents is the global event count before
// radius filtering.
func FireRiskFromContext(ctx FireContext, totalEvents int) FireRiskRecord {
	score := clampScore(int(math.Round(ctx.Score)))

	return FireRiskRecord{
		Level:       LevelForScore(score),
		Score:       score,
		NearbyCount: len(ctx.Nearby),
		TotalEvents: totalEvents,
		MostRecent:  ctx.MostRecent,
		Source:      SourceLive,
	}
}
