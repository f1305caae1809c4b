package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		message string
		want    Intent
	}{
		{"I need to register my newborn baby", IntentBirthRegistration},
		{"my baby was just born last week", IntentBirthRelated},
		{"how do I get a birth certificate", IntentBirthRegistration},
		{"enrol for medicare coverage", IntentMedicareEnrolment},
		{"I need help with a government service", IntentGeneralAssistance},
		{"something about my child", IntentBirthRegistration},
		{"what is the weather", IntentGeneralAssistance},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Extract(tc.message), tc.message)
	}
}

func TestExtractEntities(t *testing.T) {
	t.Run("postcode and location", func(t *testing.T) {
		entities := ExtractEntities("my baby was born at Westmead hospital, postcode 2150")
		assert.Equal(t, "2150", entities.Postcode)
		assert.Equal(t, "Westmead", entities.Location)
	})

	t.Run("days ago", func(t *testing.T) {
		entities := ExtractEntities("born 3 days ago")
		require.NotNil(t, entities.DaysAgo)
		assert.Equal(t, 3, *entities.DaysAgo)
	})

	t.Run("weeks convert to days", func(t *testing.T) {
		entities := ExtractEntities("born 2 weeks ago")
		require.NotNil(t, entities.DaysAgo)
		assert.Equal(t, 14, *entities.DaysAgo)
	})

	t.Run("today is zero not absent", func(t *testing.T) {
		entities := ExtractEntities("my baby arrived today")
		require.NotNil(t, entities.DaysAgo)
		assert.Equal(t, 0, *entities.DaysAgo)
	})

	t.Run("yesterday and last week", func(t *testing.T) {
		yesterday := ExtractEntities("she was born yesterday")
		require.NotNil(t, yesterday.DaysAgo)
		assert.Equal(t, 1, *yesterday.DaysAgo)

		lastWeek := ExtractEntities("he arrived last week")
		require.NotNil(t, lastWeek.DaysAgo)
		assert.Equal(t, 7, *lastWeek.DaysAgo)
	})

	t.Run("nothing extractable", func(t *testing.T) {
		entities := ExtractEntities("hello")
		assert.Empty(t, entities.Postcode)
		assert.Empty(t, entities.Location)
		assert.Nil(t, entities.DaysAgo)
	})
}

func TestDateFromDaysAgo(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-15", DateFromDaysAgo(now, 0))
	assert.Equal(t, "2025-01-12", DateFromDaysAgo(now, 3))
}
