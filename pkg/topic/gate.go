// Package topic keeps typed chat messages on the subjects the assistant serves.
package topic

import (
	"regexp"
	"strings"
)

type Decision int

const (
	// Allow sends the message to the assistant.
	Allow Decision = iota
	// Guide rejects the message locally with guidance; nothing is recorded.
	Guide
	// Refuse records a canned assistant refusal without calling the assistant.
	Refuse
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Guide:
		return "guide"
	case Refuse:
		return "refuse"
	default:
		return "unknown"
	}
}

const (
	GuidanceMessage = "Please ask about skincare, haircare, makeup, fragrance, suncare, products, or routines."
	RefusalMessage  = "Sorry, I can only answer questions related to the generated routine or topics like skincare, haircare, makeup, fragrance, suncare, products, and routines. Please rephrase your question."

	DefaultRoutineThreshold = 30
)

var DefaultKeywords = []string{
	"skincare", "haircare", "makeup", "fragrance", "suncare", "product", "routine",
	"ingredient", "retinol", "spf", "cleanser", "moistur", "hair", "skin",
}

// Gate is a case-insensitive substring allow-list.
type Gate struct {
	pattern          *regexp.Regexp
	routineThreshold int
}

// NewGate builds a gate from keywords. An empty vocabulary falls back to
// DefaultKeywords and a non-positive threshold to DefaultRoutineThreshold.
func NewGate(keywords []string, routineThreshold int) *Gate {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(k))
	}
	if len(quoted) == 0 {
		for _, k := range DefaultKeywords {
			quoted = append(quoted, regexp.QuoteMeta(k))
		}
	}
	if routineThreshold <= 0 {
		routineThreshold = DefaultRoutineThreshold
	}
	return &Gate{
		pattern:          regexp.MustCompile(`(?i)` + strings.Join(quoted, "|")),
		routineThreshold: routineThreshold,
	}
}

func (g *Gate) RoutineThreshold() int {
	return g.routineThreshold
}

func (g *Gate) OnTopic(text string) bool {
	return g.pattern.MatchString(text)
}

// Decide classifies text. hasRoutine says whether an assistant reply longer
// than the routine threshold already exists.
func (g *Gate) Decide(text string, hasRoutine bool) Decision {
	if g.OnTopic(text) {
		return Allow
	}
	if !hasRoutine {
		return Guide
	}
	return Refuse
}
