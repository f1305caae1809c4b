// Package lookup serves the reference datasets that enrich journeys:
// government service locations and area demographic profiles. Datasets are
// small CSV files loaded once at startup; a missing file yields an empty
// dataset, not an error, so the service runs without data in dev.
package lookup

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	dErrors "pathways/pkg/domain-errors"
)

const (
	serviceLocationsFile = "nsw_bdm_service_locations.csv"
	areaProfilesFile     = "abs_sa2_profile.csv"

	maxResults = 5
	// Sort-after-everything distance for unparseable postcodes.
	invalidPostcodeDistance = 9999
)

// Location is one government service point.
type Location struct {
	ServiceType    string `json:"service_type"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Suburb         string `json:"suburb"`
	Postcode       string `json:"postcode"`
	Phone          string `json:"phone"`
	URL            string `json:"url"`
	OperatingHours string `json:"operating_hours"`
	Distance       *int   `json:"distance,omitempty"`
}

// Profile is the demographic snapshot for one postcode.
type Profile struct {
	Postcode          string  `json:"postcode"`
	Suburb            string  `json:"suburb"`
	State             string  `json:"state"`
	LangNonEnglishPct float64 `json:"lang_non_english_pct"`
	MedianAge         int     `json:"median_age"`
	MedianIncome      int     `json:"median_income"`
	Population        int     `json:"population"`
	IndigenousPct     float64 `json:"indigenous_pct"`
	DisabilityPct     float64 `json:"disability_pct"`
}

// Adjustments are the inclusivity recommendations derived from an area
// profile.
type Adjustments struct {
	Postcode                 string   `json:"postcode"`
	LanguageSupport          bool     `json:"language_support"`
	AccessibilityPreferences []string `json:"accessibility_preferences"`
	CommunicationPreferences []string `json:"communication_preferences"`
}

// Retriever holds the loaded datasets.
type Retriever struct {
	locations []Location
	profiles  map[string]Profile
	logger    *slog.Logger
}

// NewRetriever loads the CSV datasets under dir.
func NewRetriever(dir string, logger *slog.Logger) (*Retriever, error) {
	r := &Retriever{profiles: map[string]Profile{}, logger: logger}

	if err := r.loadLocations(filepath.Join(dir, serviceLocationsFile)); err != nil {
		return nil, err
	}
	if err := r.loadProfiles(filepath.Join(dir, areaProfilesFile)); err != nil {
		return nil, err
	}
	logger.Info("lookup datasets loaded",
		"service_locations", len(r.locations), "area_profiles", len(r.profiles))
	return r, nil
}

// SearchServices ranks service locations for a free-text query. Queries
// mentioning birth or registration narrow to birth registry offices,
// medicare queries to enrolment points; anything else searches all
// locations. With a postcode the results sort by postcode distance, a
// crude proximity proxy that is good enough for adjacent-suburb ranking.
func (r *Retriever) SearchServices(query, postcode string) []Location {
	serviceType := classifyQuery(query)

	matches := []Location{}
	for _, loc := range r.locations {
		if serviceType != "" && loc.ServiceType != serviceType {
			continue
		}
		matches = append(matches, loc)
	}

	if postcode != "" {
		for i := range matches {
			d := postcodeDistance(matches[i].Postcode, postcode)
			matches[i].Distance = &d
		}
		sort.SliceStable(matches, func(i, j int) bool {
			return *matches[i].Distance < *matches[j].Distance
		})
	}

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}

// AreaProfile returns the demographic profile for a postcode.
func (r *Retriever) AreaProfile(postcode string) (Profile, bool) {
	p, ok := r.profiles[postcode]
	return p, ok
}

// InclusivityAdjustments derives support recommendations from the area
// profile. Thresholds match the published demographic guidance: 40%
// non-English speakers, median age 60, 10% disability, 5% Indigenous
// population. An unknown postcode yields no adjustments.
func (r *Retriever) InclusivityAdjustments(postcode string) Adjustments {
	adjustments := Adjustments{
		Postcode:                 postcode,
		AccessibilityPreferences: []string{},
		CommunicationPreferences: []string{},
	}
	profile, ok := r.profiles[postcode]
	if !ok {
		return adjustments
	}

	if profile.LangNonEnglishPct > 40 {
		adjustments.LanguageSupport = true
		adjustments.CommunicationPreferences = append(adjustments.CommunicationPreferences, "multilingual_support")
	}
	if profile.MedianAge > 60 {
		adjustments.CommunicationPreferences = append(adjustments.CommunicationPreferences, "voice_updates", "sms_updates")
	}
	if profile.DisabilityPct > 10 {
		adjustments.AccessibilityPreferences = append(adjustments.AccessibilityPreferences, "screen_reader", "high_contrast", "large_text")
	}
	if profile.IndigenousPct > 5 {
		adjustments.AccessibilityPreferences = append(adjustments.AccessibilityPreferences, "cultural_sensitivity")
	}
	return adjustments
}

func classifyQuery(query string) string {
	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "birth") || strings.Contains(lower, "registration"):
		return "birth_registration"
	case strings.Contains(lower, "medicare"):
		return "medicare_enrolment"
	default:
		return ""
	}
}

func postcodeDistance(a, b string) int {
	p1, err1 := strconv.Atoi(a)
	p2, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil {
		return invalidPostcodeDistance
	}
	if p1 > p2 {
		return p1 - p2
	}
	return p2 - p1
}

func (r *Retriever) loadLocations(path string) error {
	rows, header, err := readCSV(path)
	if err != nil || rows == nil {
		return err
	}
	for _, row := range rows {
		r.locations = append(r.locations, Location{
			ServiceType:    header.get(row, "service_type"),
			Name:           header.get(row, "name"),
			Address:        header.get(row, "address"),
			Suburb:         header.get(row, "suburb"),
			Postcode:       header.get(row, "postcode"),
			Phone:          header.get(row, "phone"),
			URL:            header.get(row, "url"),
			OperatingHours: header.get(row, "operating_hours"),
		})
	}
	return nil
}

func (r *Retriever) loadProfiles(path string) error {
	rows, header, err := readCSV(path)
	if err != nil || rows == nil {
		return err
	}
	for _, row := range rows {
		profile := Profile{
			Postcode:          header.get(row, "postcode"),
			Suburb:            header.get(row, "suburb"),
			State:             header.get(row, "state"),
			LangNonEnglishPct: header.float(row, "lang_non_english_pct"),
			MedianAge:         header.int(row, "median_age"),
			MedianIncome:      header.int(row, "median_income"),
			Population:        header.int(row, "population"),
			IndigenousPct:     header.float(row, "indigenous_pct"),
			DisabilityPct:     header.float(row, "disability_pct"),
		}
		r.profiles[profile.Postcode] = profile
	}
	return nil
}

type csvHeader map[string]int

func (h csvHeader) get(row []string, col string) string {
	idx, ok := h[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (h csvHeader) int(row []string, col string) int {
	n, _ := strconv.Atoi(h.get(row, col))
	return n
}

func (h csvHeader) float(row []string, col string) float64 {
	f, _ := strconv.ParseFloat(h.get(row, col), 64)
	return f
}

// readCSV returns the data rows and a column index. A missing file returns
// nil rows with no error.
func readCSV(path string) ([][]string, csvHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "open dataset "+filepath.Base(path))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "read dataset header "+filepath.Base(path))
	}
	header := csvHeader{}
	for i, col := range headerRow {
		header[strings.TrimSpace(col)] = i
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeStorageFailure, "read dataset "+filepath.Base(path))
	}
	return rows, header, nil
}
