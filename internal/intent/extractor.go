// Package intent classifies free-text requests and pulls out the entities
// the orchestrator can act on. Matching is keyword and regex based; there
// is deliberately no model in the loop, so classification is deterministic
// and auditable.
package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Intent string

const (
	IntentBirthRegistration Intent = "birth_registration"
	IntentBirthRelated      Intent = "birth_related"
	IntentMedicareEnrolment Intent = "medicare_enrolment"
	IntentGeneralAssistance Intent = "general_assistance"
)

// Entities are the structured fragments recovered from a message. DaysAgo
// is a pointer so "today" (zero days) is distinguishable from absent.
type Entities struct {
	Postcode string `json:"postcode,omitempty"`
	Location string `json:"location,omitempty"`
	DaysAgo  *int   `json:"days_ago,omitempty"`
}

var (
	postcodeRe = regexp.MustCompile(`\b(\d{4})\b`)
	daysAgoRe  = regexp.MustCompile(`(?i)(\d+) days? ago`)
	weeksAgoRe = regexp.MustCompile(`(?i)(\d+) weeks? ago`)

	locationRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)in (\w+)`),
		regexp.MustCompile(`(?i)at (\w+)`),
		regexp.MustCompile(`(?i)(\w+) hospital`),
		regexp.MustCompile(`(?i)(\w+) medical centre`),
	}
)

// Extract classifies the message. Birth vocabulary is checked first so
// "register my baby" never falls through to general assistance.
func Extract(message string) Intent {
	lower := strings.ToLower(message)

	if containsAny(lower, "baby", "born", "birth", "newborn") {
		if containsAny(lower, "register", "registration", "certificate") {
			return IntentBirthRegistration
		}
		return IntentBirthRelated
	}
	if containsAny(lower, "medicare", "health", "medical", "coverage") {
		return IntentMedicareEnrolment
	}
	if containsAny(lower, "government", "service", "help", "assist") {
		return IntentGeneralAssistance
	}
	if containsAny(lower, "baby", "child", "infant") {
		return IntentBirthRegistration
	}
	return IntentGeneralAssistance
}

// ExtractEntities pulls postcode, location, and relative-time references
// out of the message.
func ExtractEntities(message string) Entities {
	var entities Entities

	if m := postcodeRe.FindStringSubmatch(message); m != nil {
		entities.Postcode = m[1]
	}

	for _, re := range locationRes {
		if m := re.FindStringSubmatch(message); m != nil {
			entities.Location = m[1]
			break
		}
	}

	lower := strings.ToLower(message)
	switch {
	case daysAgoRe.MatchString(message):
		n, _ := strconv.Atoi(daysAgoRe.FindStringSubmatch(message)[1])
		entities.DaysAgo = &n
	case weeksAgoRe.MatchString(message):
		n, _ := strconv.Atoi(weeksAgoRe.FindStringSubmatch(message)[1])
		days := n * 7
		entities.DaysAgo = &days
	case strings.Contains(lower, "yesterday"):
		one := 1
		entities.DaysAgo = &one
	case strings.Contains(lower, "today"):
		zero := 0
		entities.DaysAgo = &zero
	case strings.Contains(lower, "last week"):
		seven := 7
		entities.DaysAgo = &seven
	}
	return entities
}

// DateFromDaysAgo converts a relative day count to an ISO date.
func DateFromDaysAgo(now time.Time, daysAgo int) string {
	return now.AddDate(0, 0, -daysAgo).Format("2006-01-02")
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
