package diff

import "strings"

// Severity classifies how operationally significant a deviation is
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarn     Severity = "warn"
	SeverityCritical Severity = "critical"
)

// rule is one tier of the classifier: a severity and the substrings
// that trigger it. Rules are evaluated in slice order and the first
// tier with any match wins, so security and reachability keywords
// always outrank cosmetic ones no matter where they appear in the diff.
type rule struct {
	severity Severity
	keywords []string
}

var severityRules = []rule{
	{SeverityCritical, []string{"interface ", "access-list", "acl ", "route-map", "ip access"}},
	{SeverityWarn, []string{"hostname", "banner"}},
}

// Classify returns the severity of a set of changed (added or removed)
// lines. Each tier scans the full changed-line set before falling
// through to the next; an empty set classifies as info.
func Classify(changed []string) Severity {
	for _, r := range severityRules {
		for _, line := range changed {
			l := strings.ToLower(line)
			for _, kw := range r.keywords {
				if strings.Contains(l, kw) {
					return r.severity
				}
			}
		}
	}
	return SeverityInfo
}
