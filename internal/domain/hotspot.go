package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// hotspotMinFields is the column count of the thermal detection CSV:
// latitude, longitude, brightness, scan, track, acq_date, acq_time,
// satellite, instrument, confidence, version, bright_t31, frp, daynight.
const hotspotMinFields = 14

// ErrHotspotFeedEmpty indicates the entire CSV payload was unreadable, as
// opposed to a healthy feed that happens to contain zero detections. Callers
// must surface the two states differently.
var ErrHotspotFeedEmpty = errors.New("hotspot feed unreadable")

// ParseHotspots parses a thermal-detection CSV feed into typed detections.
// The header line, blank lines, short rows, and rows with non-numeric
// coordinates are skipped, never fatal; only a wholly unreadable payload
// returns an error.
func ParseHotspots(csvText string) ([]HotspotDetection, error) {
	lines := strings.Split(strings.ReplaceAll(csvText, "\r\n", "\n"), "\n")

	sawHeader := false
	detections := []HotspotDetection{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !sawHeader {
			sawHeader = true
			continue
		}

		d, ok := parseHotspotRow(line)
		if !ok {
			continue
		}
		detections = append(detections, d)
	}

	if !sawHeader {
		return nil, ErrHotspotFeedEmpty
	}
	return detections, nil
}

// parseHotspotRow parses one detection line. Returns false for rows that
// should be skipped rather than failing the whole feed.
func parseHotspotRow(line string) (HotspotDetection, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < hotspotMinFields {
		return HotspotDetection{}, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	lat, errLat := strconv.ParseFloat(fields[0], 64)
	lon, errLon := strconv.ParseFloat(fields[1], 64)
	if errLat != nil || errLon != nil {
		return HotspotDetection{}, false
	}

	acqDate := fields[5]
	acqTime := normalizeAcqTime(fields[6])

	return HotspotDetection{
		ID:           hotspotID(acqDate, acqTime, lat, lon),
		Lat:          lat,
		Lon:          lon,
		BrightnessK:  parseFloatOrZero(fields[2]),
		ScanKm:       parseFloatOrZero(fields[3]),
		TrackKm:      parseFloatOrZero(fields[4]),
		AcqDate:      acqDate,
		AcqTime:      acqTime,
		Satellite:    fields[7],
		Instrument:   fields[8],
		Confidence:   fields[9],
		Version:      fields[10],
		Brightness2K: parseFloatOrZero(fields[11]),
		FRP:          parseFloatOrZero(fields[12]),
		DayNight:     strings.ToUpper(fields[13]),
	}, true
}

// normalizeAcqTime converts a raw 3-4 digit HHMM field to "HH:MM" by
// zero-padding to four digits: "930" → "09:30".
func normalizeAcqTime(raw string) string {
	raw = strings.TrimSpace(raw)
	for len(raw) < 4 {
		raw = "0" + raw
	}
	return raw[:2] + ":" + raw[2:4]
}

// hotspotID derives a detection ID that is stable across repeated polls of
// the same feed, so callers can deduplicate and diff between refreshes.
func hotspotID(date, timeHHMM string, lat, lon float64) string {
	return fmt.Sprintf("%s-%s-%.3f-%.3f", date, timeHHMM, lat, lon)
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
