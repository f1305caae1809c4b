package lookup

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

const locationsCSV = `service_type,name,address,suburb,postcode,phone,url,operating_hours
birth_registration,Parramatta Registry,1 George St,Parramatta,2150,02 9000 0001,https://example.gov.au/parramatta,Mon-Fri 9-5
birth_registration,Sydney Registry,35 Regent St,Chippendale,2008,02 9000 0002,https://example.gov.au/sydney,Mon-Fri 9-5
medicare_enrolment,Parramatta Service Centre,2 Smith St,Parramatta,2150,02 9000 0003,https://example.gov.au/medicare,Mon-Fri 8:30-4:30
`

const profilesCSV = `postcode,suburb,state,lang_non_english_pct,median_age,median_income,population,indigenous_pct,disability_pct
2150,Parramatta,NSW,48.2,34,52000,26000,2.1,6.0
2880,Broken Hill,NSW,8.5,62,41000,17000,7.9,12.5
`

type RetrieverSuite struct {
	suite.Suite
	retriever *Retriever
}

func TestRetrieverSuite(t *testing.T) {
	suite.Run(t, new(RetrieverSuite))
}

func (s *RetrieverSuite) SetupTest() {
	dir := s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(dir, serviceLocationsFile), []byte(locationsCSV), 0o640))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, areaProfilesFile), []byte(profilesCSV), 0o640))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var err error
	s.retriever, err = NewRetriever(dir, logger)
	s.Require().NoError(err)
}

func (s *RetrieverSuite) TestSearchServices() {
	s.Run("filters by service type and ranks by postcode distance", func() {
		results := s.retriever.SearchServices("birth registration", "2100")
		s.Require().Len(results, 2)
		s.Equal("Parramatta Registry", results[0].Name)
		s.Equal("Sydney Registry", results[1].Name)
		s.Require().NotNil(results[0].Distance)
		s.Equal(50, *results[0].Distance)
	})

	s.Run("medicare query narrows to enrolment points", func() {
		results := s.retriever.SearchServices("medicare", "")
		s.Require().Len(results, 1)
		s.Equal("Parramatta Service Centre", results[0].Name)
		s.Nil(results[0].Distance)
	})

	s.Run("unrecognized query searches all locations", func() {
		results := s.retriever.SearchServices("passport", "2150")
		s.Len(results, 3)
	})

	s.Run("invalid postcode sorts last", func() {
		results := s.retriever.SearchServices("birth registration", "not-a-postcode")
		s.Require().Len(results, 2)
		for _, r := range results {
			s.Equal(invalidPostcodeDistance, *r.Distance)
		}
	})
}

func (s *RetrieverSuite) TestAreaProfile() {
	profile, ok := s.retriever.AreaProfile("2150")
	s.Require().True(ok)
	s.Equal("Parramatta", profile.Suburb)
	s.InDelta(48.2, profile.LangNonEnglishPct, 0.001)
	s.Equal(26000, profile.Population)

	_, ok = s.retriever.AreaProfile("9999")
	s.False(ok)
}

func (s *RetrieverSuite) TestInclusivityAdjustments() {
	s.Run("high non english share enables language support", func() {
		adj := s.retriever.InclusivityAdjustments("2150")
		s.True(adj.LanguageSupport)
		s.Contains(adj.CommunicationPreferences, "multilingual_support")
		s.Empty(adj.AccessibilityPreferences)
	})

	s.Run("older high disability area gets access preferences", func() {
		adj := s.retriever.InclusivityAdjustments("2880")
		s.False(adj.LanguageSupport)
		s.Contains(adj.CommunicationPreferences, "voice_updates")
		s.Contains(adj.CommunicationPreferences, "sms_updates")
		s.Contains(adj.AccessibilityPreferences, "screen_reader")
		s.Contains(adj.AccessibilityPreferences, "cultural_sensitivity")
	})

	s.Run("unknown postcode yields no adjustments", func() {
		adj := s.retriever.InclusivityAdjustments("9999")
		s.False(adj.LanguageSupport)
		s.Empty(adj.AccessibilityPreferences)
		s.Empty(adj.CommunicationPreferences)
	})
}

func (s *RetrieverSuite) TestMissingDatasets() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	retriever, err := NewRetriever(s.T().TempDir(), logger)
	s.Require().NoError(err)

	s.Empty(retriever.SearchServices("birth registration", "2150"))
	_, ok := retriever.AreaProfile("2150")
	s.False(ok)
}
