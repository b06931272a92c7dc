package config

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type SectionReport struct {
	Error        string   `json:"error,omitempty"`
	Placeholders []string `json:"placeholders,omitempty"`
}

// Report is the outcome of checking a configuration, section by section.
type Report struct {
	Environment RunningEnvironment                            `json:"environment"`
	Valid       bool                                          `json:"valid"`
	Sections    *orderedmap.OrderedMap[string, SectionReport] `json:"sections"`
}

// Check validates every section of c and collects the active placeholders of each one.
// Placeholders only make the report invalid in production.
func Check(c Config) Report {
	report := Report{
		Environment: c.App.Environment,
		Valid:       true,
		Sections:    orderedmap.New[string, SectionReport](),
	}
	placeholders := c.ActivePlaceholders()
	for _, v := range c.validators() {
		section := SectionReport{}
		if err := v.validate(); err != nil {
			section.Error = err.Error()
			report.Valid = false
		}
		for _, key := range placeholders {
			if strings.HasPrefix(key, v.name+".") {
				section.Placeholders = append(section.Placeholders, key)
			}
		}
		if len(section.Placeholders) > 0 && c.App.Environment == Production {
			report.Valid = false
		}
		report.Sections.Set(v.name, section)
	}
	return report
}
