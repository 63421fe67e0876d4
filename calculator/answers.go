package calculator

import (
	"strconv"
	"strings"

	"github.com/massenergize/carbon-backend/utils"
)

// Answers is the flat map of question-name to answer value an evaluator
// consumes. Choice and text answers are strings; numeric answers arrive as
// float64 from JSON but string forms are tolerated. Missing or malformed
// values never raise; every accessor takes an explicit default.
type Answers map[string]any

// String returns the answer for key as a trimmed string, or def when the
// key is absent or empty.
func (a Answers) String(key, def string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return def
	}
	switch s := v.(type) {
	case string:
		if t := strings.TrimSpace(s); t != "" {
			return t
		}
		return def
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		if s {
			return "Yes"
		}
		return "No"
	default:
		return def
	}
}

// Float returns the answer for key as a float64, or def when the key is
// absent or not numeric.
func (a Answers) Float(key string, def float64) float64 {
	v, ok := a[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
		return def
	default:
		return def
	}
}

// YesNo returns the answer for key normalized to "Yes"/"No" casing, with def
// applied when absent. Anything that is not an explicit no counts as the
// literal answer given.
func (a Answers) YesNo(key, def string) string {
	s := a.String(key, def)
	switch strings.ToLower(s) {
	case "yes", "y", "true":
		return "Yes"
	case "no", "n", "false":
		return "No"
	default:
		return s
	}
}

// Localities returns the ordered locality candidates for constants lookup:
// the user's community when one was answered, narrowest first. The resolver
// appends the universal "default" locality itself.
func (a Answers) Localities() []string {
	community := a.String(utils.CommunityAnswerKey, "")
	if community == "" || community == utils.DefaultLocality {
		return nil
	}
	return []string{community}
}
