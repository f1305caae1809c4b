// Package forms maps journey step identifiers to declarative form schemas.
//
// A schema declares the fields a government form expects and, for each field,
// the dotted source path into the intake record that prefills it. Schemas are
// immutable once loaded.
package forms

// Field is one form field with its intake source path.
type Field struct {
	ID       string `yaml:"id" json:"id"`
	Label    string `yaml:"label" json:"label"`
	Required bool   `yaml:"required" json:"required"`
	// Source is the dotted path into the intake record, e.g. "parent1.full_name".
	Source string `yaml:"source" json:"source"`
}

// Schema describes one government form.
type Schema struct {
	ID              string  `yaml:"id" json:"id"`
	Title           string  `yaml:"title" json:"title"`
	Description     string  `yaml:"description" json:"description"`
	Fields          []Field `yaml:"fields" json:"fields"`
	ReviewText      string  `yaml:"review_text" json:"review_text"`
	ReceiptExpected bool    `yaml:"receipt_expected" json:"receipt_expected"`
}
