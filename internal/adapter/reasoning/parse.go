package reasoning

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/emberwatch/wildfire-risk-engine/internal/domain"
)

// Parse tiers, recorded in metrics so degraded providers are visible.
const (
	tierJSON          = "json"
	tierText          = "text"
	tierDeterministic = "deterministic"
)

var (
	// bulletRe matches leading ordinal/bullet markers: "1. ", "2) ", "- ", "* ".
	bulletRe = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)

	scoreRe = regexp.MustCompile(`(?i)risk\s*score\s*[:\-]?\s*(\d{1,3})`)
	levelRe = regexp.MustCompile(`(?i)risk\s*level\s*[:\-]?\s*(low|medium|high|extreme)`)

	fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
)

// parsed is the intermediate result of response parsing, before the
// deterministic safety net fills a missing score.
type parsed struct {
	Analysis        string
	Recommendations []string
	Score           *int
	Level           domain.RiskLevel
	Tier            string
}

// parseResponse applies the two-tier strategy: a strict structured parse
// first, then heuristic text extraction. Tier 2 cannot fail; it just may
// come back without a score.
func parseResponse(raw string) parsed {
	if p, ok := parseStructured(raw); ok {
		p.Tier = tierJSON
		return p
	}
	p := parseLoose(raw)
	p.Tier = tierText
	return p
}

// parseStructured strips markdown fencing, extracts the first top-level JSON
// object by brace matching, and validates that riskScore is numeric and
// riskLevel is one of the four known levels.
func parseStructured(raw string) (parsed, bool) {
	cleaned := raw
	if m := fenceRe.FindStringSubmatch(raw); len(m) == 2 {
		cleaned = m[1]
	}

	obj, ok := extractJSONObject(cleaned)
	if !ok {
		return parsed{}, false
	}

	var body struct {
		RiskScore       *float64 `json:"riskScore"`
		RiskLevel       string   `json:"riskLevel"`
		Analysis        string   `json:"analysis"`
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(obj), &body); err != nil {
		return parsed{}, false
	}
	if body.RiskScore == nil {
		return parsed{}, false
	}
	level, ok := domain.ParseRiskLevel(body.RiskLevel)
	if !ok {
		return parsed{}, false
	}

	score := clampScore(int(math.Round(*body.RiskScore)))
	return parsed{
		Analysis:        strings.TrimSpace(body.Analysis),
		Recommendations: body.Recommendations,
		Score:           &score,
		Level:           level,
	}, true
}

// extractJSONObject returns the first balanced top-level {...} block.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// parseLoose mines a free-text response: bullet/ordinal lines become
// recommendations, substantial brace-free lines join the analysis, and a
// score/level pair is regex-extracted independently if present.
func parseLoose(raw string) parsed {
	var p parsed
	var analysisParts []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := bulletRe.FindStringSubmatch(line); len(m) == 2 {
			p.Recommendations = append(p.Recommendations, strings.TrimSpace(m[1]))
			continue
		}
		if len(line) > 20 && !strings.ContainsAny(line, "{}") {
			analysisParts = append(analysisParts, line)
		}
	}
	p.Analysis = strings.Join(analysisParts, " ")

	if m := scoreRe.FindStringSubmatch(raw); len(m) == 2 {
		if v, err := strconv.Atoi(m[1]); err == nil {
			score := clampScore(v)
			p.Score = &score
		}
	}
	if m := levelRe.FindStringSubmatch(raw); len(m) == 2 {
		if level, ok := domain.ParseRiskLevel(m[1]); ok {
			p.Level = level
		}
	}

	return p
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
