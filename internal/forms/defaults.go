package forms

// Built-in default schemas for the known journey steps. These mirror the
// production NSW/Commonwealth forms closely enough for prefill and review;
// a file in the forms directory with the same step id overrides them.
var defaultSchemas = map[string]Schema{
	"birth_reg": {
		ID:          "birth_registry_nsw",
		Title:       "Birth Registration (NSW)",
		Description: "Register the birth of your baby with NSW Registry of Births, Deaths and Marriages",
		Fields: []Field{
			{ID: "parent1_full_name", Label: "Parent 1 Full Name", Required: true, Source: "parent1.full_name"},
			{ID: "parent1_dob", Label: "Parent 1 Date of Birth", Required: true, Source: "parent1.dob"},
			{ID: "baby_name", Label: "Baby's Name", Required: false, Source: "baby.name"},
			{ID: "baby_dob", Label: "Baby's Date of Birth", Required: true, Source: "baby.dob"},
			{ID: "place_of_birth", Label: "Place of Birth", Required: false, Source: "baby.place_of_birth"},
		},
		ReviewText:      "Please review the birth registration details above. All required fields have been completed based on your intake information.",
		ReceiptExpected: true,
	},
	"medicare_enrolment": {
		ID:          "medicare_newborn",
		Title:       "Medicare Newborn Enrolment",
		Description: "Enrol your newborn baby for Medicare coverage",
		Fields: []Field{
			{ID: "parent1_full_name", Label: "Parent 1 Full Name", Required: true, Source: "parent1.full_name"},
			{ID: "baby_name", Label: "Baby's Name", Required: false, Source: "baby.name"},
			{ID: "baby_dob", Label: "Baby's Date of Birth", Required: true, Source: "baby.dob"},
		},
		ReviewText:      "Please review the Medicare enrolment details above. All required fields have been completed based on your intake information.",
		ReceiptExpected: true,
	},
	"unemployment_centrelink": {
		ID:          "unemployment_centrelink",
		Title:       "Centrelink JobSeeker Payment",
		Description: "Apply for unemployment benefits through Centrelink",
		Fields: []Field{
			{ID: "applicant_full_name", Label: "Full Name", Required: true, Source: "applicant.full_name"},
			{ID: "applicant_dob", Label: "Date of Birth", Required: true, Source: "applicant.dob"},
			{ID: "last_employer", Label: "Last Employer Name", Required: false, Source: "employment.last_employer"},
			{ID: "last_work_date", Label: "Last Day of Work", Required: false, Source: "employment.last_work_date"},
		},
		ReviewText:      "Please review your JobSeeker Payment application details above. All required fields have been completed based on your intake information.",
		ReceiptExpected: true,
	},
	"job_service_provider": {
		ID:          "job_service_provider",
		Title:       "Job Service Provider Registration",
		Description: "Register with a job service provider for employment assistance",
		Fields: []Field{
			{ID: "applicant_full_name", Label: "Full Name", Required: true, Source: "applicant.full_name"},
			{ID: "applicant_dob", Label: "Date of Birth", Required: true, Source: "applicant.dob"},
			{ID: "skills_assessment", Label: "Skills Assessment Required", Required: false, Source: "employment.skills_assessment"},
		},
		ReviewText:      "Please review your Job Service Provider registration details above. All required fields have been completed based on your intake information.",
		ReceiptExpected: true,
	},
	"emergency_disaster_payment": {
		ID:          "emergency_disaster_payment",
		Title:       "Emergency Disaster Payment",
		Description: "Apply for emergency financial assistance after a disaster",
		Fields: []Field{
			{ID: "applicant_full_name", Label: "Full Name", Required: true, Source: "applicant.full_name"},
			{ID: "applicant_dob", Label: "Date of Birth", Required: true, Source: "applicant.dob"},
			{ID: "disaster_type", Label: "Type of Disaster", Required: false, Source: "disaster.type"},
			{ID: "disaster_date", Label: "Date of Disaster", Required: false, Source: "disaster.date"},
		},
		ReviewText:      "Please review your Emergency Disaster Payment application details above. All required fields have been completed based on your intake information.",
		ReceiptExpected: true,
	},
	"emergency_housing_assistance": {
		ID:          "emergency_housing_assistance",
		Title:       "Emergency Housing Assistance",
		Description: "Apply for emergency housing support after a disaster",
		Fields: []Field{
			{ID: "applicant_full_name", Label: "Full Name", Required: true, Source: "applicant.full_name"},
			{ID: "applicant_dob", Label: "Date of Birth", Required: true, Source: "applicant.dob"},
			{ID: "disaster_type", Label: "Type of Disaster", Required: false, Source: "disaster.type"},
			{ID: "housing_status", Label: "Current Housing Status", Required: false, Source: "housing.status"},
		},
		ReviewText:      "Please review your Emergency Housing Assistance application details above. All required fields have been completed based on your intake information.",
		ReceiptExpected: true,
	},
	"carer_payment": {
		ID:          "carer_payment",
		Title:       "Carer Payment Application",
		Description: "Apply for income support as a full-time carer",
		Fields: []Field{
			{ID: "applicant_full_name", Label: "Full Name", Required: true, Source: "applicant.full_name"},
			{ID: "applicant_dob", Label: "Date of Birth", Required: true, Source: "applicant.dob"},
			{ID: "care_recipient_name", Label: "Care Recipient Name", Required: false, Source: "carer_info.care_recipient_name"},
			{ID: "care_hours_per_week", Label: "Care Hours Per Week", Required: false, Source: "carer_info.care_hours_per_week"},
		},
		ReviewText:      "Please review your Carer Payment application details above. All required fields have been completed based on your intake information.",
		ReceiptExpected: true,
	},
	"carer_allowance": {
		ID:          "carer_allowance",
		Title:       "Carer Allowance Application",
		Description: "Apply for a supplementary payment for daily care",
		Fields: []Field{
			{ID: "applicant_full_name", Label: "Full Name", Required: true, Source: "applicant.full_name"},
			{ID: "applicant_dob", Label: "Date of Birth", Required: true, Source: "applicant.dob"},
			{ID: "relationship", Label: "Relationship to Care Recipient", Required: false, Source: "carer_info.relationship"},
		},
		ReviewText:      "Please review your Carer Allowance application details above. All required fields have been completed based on your intake information.",
		ReceiptExpected: true,
	},
}
