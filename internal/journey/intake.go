package journey

import (
	"regexp"

	dErrors "pathways/pkg/domain-errors"
)

// Intake is the user-supplied structured input describing their situation.
// It is a union of life-event-specific groups plus common fields; callers
// populate only the groups relevant to their scenario. Immutable once
// accepted by the orchestrator.
//
// Dates are carried as ISO strings (YYYY-MM-DD) end to end: they arrive that
// way, prefill emits them that way, and nothing in between does arithmetic
// on them.
type Intake struct {
	// Birth-related fields
	Parent1 *Person `json:"parent1,omitempty"`
	Parent2 *Person `json:"parent2,omitempty"`
	Baby    *Baby   `json:"baby,omitempty"`

	// Unemployment-related fields
	Applicant  *Person     `json:"applicant,omitempty"`
	Employment *Employment `json:"employment,omitempty"`
	Banking    *Banking    `json:"banking,omitempty"`

	// Emergency / disaster-related fields
	Disaster *Disaster `json:"disaster,omitempty"`
	Housing  *Housing  `json:"housing,omitempty"`

	// Carer support fields
	Carer *CarerInfo `json:"carer_info,omitempty"`

	// Common fields
	PreferredLanguage string   `json:"preferred_language,omitempty"`
	Accessibility     []string `json:"accessibility,omitempty"`
	Address           *Address `json:"address,omitempty"`
}

type Address struct {
	Line1    string `json:"line1"`
	Suburb   string `json:"suburb"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
}

type Person struct {
	FullName string   `json:"full_name"`
	DOB      string   `json:"dob"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Address  *Address `json:"address,omitempty"`
}

type Baby struct {
	Name         string `json:"name,omitempty"`
	Sex          string `json:"sex,omitempty"`
	DOB          string `json:"dob"`
	PlaceOfBirth string `json:"place_of_birth,omitempty"`
}

type Employment struct {
	LastEmployer          string   `json:"last_employer,omitempty"`
	LastWorkDate          string   `json:"last_work_date,omitempty"`
	ReasonForUnemployment string   `json:"reason_for_unemployment,omitempty"`
	PreferredProvider     string   `json:"preferred_provider,omitempty"`
	SkillsAssessment      *bool    `json:"skills_assessment,omitempty"`
	TrainingInterests     []string `json:"training_interests,omitempty"`
	WorkPreferences       []string `json:"work_preferences,omitempty"`
}

type Banking struct {
	BSB           string `json:"bsb,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	AccountName   string `json:"account_name,omitempty"`
}

type Disaster struct {
	Type           string `json:"type,omitempty"`
	Date           string `json:"date,omitempty"`
	Location       string `json:"location,omitempty"`
	PropertyDamage string `json:"property_damage,omitempty"`
}

type Housing struct {
	Status                       string   `json:"status,omitempty"`
	DamageDescription            string   `json:"damage_description,omitempty"`
	HouseholdSize                int      `json:"household_size,omitempty"`
	SpecialNeeds                 []string `json:"special_needs,omitempty"`
	TemporaryAccommodationNeeded *bool    `json:"temporary_accommodation_needed,omitempty"`
}

type CarerInfo struct {
	CareRecipientName string `json:"care_recipient_name,omitempty"`
	Relationship      string `json:"relationship,omitempty"`
	CareHoursPerWeek  int    `json:"care_hours_per_week,omitempty"`
}

var (
	dobPattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	postcodePattern = regexp.MustCompile(`^\d{4}$`)
)

// Validate rejects malformed intake before any journey is created. The check
// is structural only: populated persons need a name and a well-formed DOB,
// postcodes are four digits. Which groups are populated is a classification
// concern, not a validation one.
func (in *Intake) Validate() error {
	for _, p := range []struct {
		label  string
		person *Person
	}{
		{"parent1", in.Parent1},
		{"parent2", in.Parent2},
		{"applicant", in.Applicant},
	} {
		if p.person == nil {
			continue
		}
		if p.person.FullName == "" {
			return dErrors.New(dErrors.CodeBadRequest, p.label+".full_name is required")
		}
		if p.person.DOB != "" && !dobPattern.MatchString(p.person.DOB) {
			return dErrors.New(dErrors.CodeBadRequest, p.label+".dob must be YYYY-MM-DD")
		}
	}
	if in.Baby != nil && in.Baby.DOB != "" && !dobPattern.MatchString(in.Baby.DOB) {
		return dErrors.New(dErrors.CodeBadRequest, "baby.dob must be YYYY-MM-DD")
	}
	if in.Address != nil && in.Address.Postcode != "" && !postcodePattern.MatchString(in.Address.Postcode) {
		return dErrors.New(dErrors.CodeBadRequest, "address.postcode must be four digits")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Field accessors for dotted-path resolution
// -----------------------------------------------------------------------------
//
// Each intake node exposes Field(name) so the path resolver can traverse
// without reflection. Missing groups, empty strings, and nil optionals all
// report a soft miss (false); prefill degrades gracefully when optional data
// is not yet known.

func strField(v string) (any, bool) {
	if v == "" {
		return nil, false
	}
	return v, true
}

func intField(v int) (any, bool) {
	if v == 0 {
		return nil, false
	}
	return v, true
}

func boolField(v *bool) (any, bool) {
	if v == nil {
		return nil, false
	}
	return *v, true
}

func listField(v []string) (any, bool) {
	if len(v) == 0 {
		return nil, false
	}
	return v, true
}

func (in *Intake) Field(name string) (any, bool) {
	switch name {
	case "parent1":
		if in.Parent1 == nil {
			return nil, false
		}
		return in.Parent1, true
	case "parent2":
		if in.Parent2 == nil {
			return nil, false
		}
		return in.Parent2, true
	case "baby":
		if in.Baby == nil {
			return nil, false
		}
		return in.Baby, true
	case "applicant":
		if in.Applicant == nil {
			return nil, false
		}
		return in.Applicant, true
	case "employment":
		if in.Employment == nil {
			return nil, false
		}
		return in.Employment, true
	case "banking":
		if in.Banking == nil {
			return nil, false
		}
		return in.Banking, true
	case "disaster":
		if in.Disaster == nil {
			return nil, false
		}
		return in.Disaster, true
	case "housing":
		if in.Housing == nil {
			return nil, false
		}
		return in.Housing, true
	case "carer_info":
		if in.Carer == nil {
			return nil, false
		}
		return in.Carer, true
	case "preferred_language":
		return strField(in.PreferredLanguage)
	case "accessibility":
		return listField(in.Accessibility)
	case "address":
		if in.Address == nil {
			return nil, false
		}
		return in.Address, true
	}
	return nil, false
}

func (a *Address) Field(name string) (any, bool) {
	switch name {
	case "line1":
		return strField(a.Line1)
	case "suburb":
		return strField(a.Suburb)
	case "state":
		return strField(a.State)
	case "postcode":
		return strField(a.Postcode)
	}
	return nil, false
}

func (p *Person) Field(name string) (any, bool) {
	switch name {
	case "full_name":
		return strField(p.FullName)
	case "dob":
		return strField(p.DOB)
	case "email":
		return strField(p.Email)
	case "phone":
		return strField(p.Phone)
	case "address":
		if p.Address == nil {
			return nil, false
		}
		return p.Address, true
	}
	return nil, false
}

func (b *Baby) Field(name string) (any, bool) {
	switch name {
	case "name":
		return strField(b.Name)
	case "sex":
		return strField(b.Sex)
	case "dob":
		return strField(b.DOB)
	case "place_of_birth":
		return strField(b.PlaceOfBirth)
	}
	return nil, false
}

func (e *Employment) Field(name string) (any, bool) {
	switch name {
	case "last_employer":
		return strField(e.LastEmployer)
	case "last_work_date":
		return strField(e.LastWorkDate)
	case "reason_for_unemployment":
		return strField(e.ReasonForUnemployment)
	case "preferred_provider":
		return strField(e.PreferredProvider)
	case "skills_assessment":
		return boolField(e.SkillsAssessment)
	case "training_interests":
		return listField(e.TrainingInterests)
	case "work_preferences":
		return listField(e.WorkPreferences)
	}
	return nil, false
}

func (b *Banking) Field(name string) (any, bool) {
	switch name {
	case "bsb":
		return strField(b.BSB)
	case "account_number":
		return strField(b.AccountNumber)
	case "account_name":
		return strField(b.AccountName)
	}
	return nil, false
}

func (d *Disaster) Field(name string) (any, bool) {
	switch name {
	case "type":
		return strField(d.Type)
	case "date":
		return strField(d.Date)
	case "location":
		return strField(d.Location)
	case "property_damage":
		return strField(d.PropertyDamage)
	}
	return nil, false
}

func (h *Housing) Field(name string) (any, bool) {
	switch name {
	case "status":
		return strField(h.Status)
	case "damage_description":
		return strField(h.DamageDescription)
	case "household_size":
		return intField(h.HouseholdSize)
	case "special_needs":
		return listField(h.SpecialNeeds)
	case "temporary_accommodation_needed":
		return boolField(h.TemporaryAccommodationNeeded)
	}
	return nil, false
}

func (c *CarerInfo) Field(name string) (any, bool) {
	switch name {
	case "care_recipient_name":
		return strField(c.CareRecipientName)
	case "relationship":
		return strField(c.Relationship)
	case "care_hours_per_week":
		return intField(c.CareHoursPerWeek)
	}
	return nil, false
}
