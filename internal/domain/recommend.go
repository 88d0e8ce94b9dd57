package domain

// DefaultRecommendations derives guidance from simple threshold rules on the
// deterministic records. Used when no reasoning provider is configured and as
// the floor under a degraded reasoning call; always returns 3-5 entries.
func DefaultRecommendations(weather WeatherRecord, fire FireRiskRecord) []string {
	recs := []string{}

	if weather.Humidity < 30 {
		recs = append(recs, "Humidity is very low; avoid open flames and report any smoke immediately.")
	}
	if weather.WindSpeedKmh > 25 {
		recs = append(recs, "Strong winds can spread fire rapidly; secure loose outdoor materials and review evacuation routes.")
	}
	if weather.TemperatureC > 30 {
		recs = append(recs, "High temperatures increase ignition risk; limit outdoor equipment use during peak heat.")
	}
	if fire.NearbyCount > 0 {
		recs = append(recs, "Active fires are reported in the region; monitor local emergency broadcasts for updates.")
	}
	if fire.Level == RiskHigh || fire.Level == RiskExtreme {
		recs = append(recs, "Prepare an emergency kit with essentials for at least 72 hours.")
	}

	general := []string{
		"Keep a defensible space clear of dry vegetation around structures.",
		"Know at least two evacuation routes from your area.",
		"Sign up for local emergency alert notifications.",
	}
	for _, g := range general {
		if len(recs) >= 3 {
			break
		}
		recs = append(recs, g)
	}

	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs
}
