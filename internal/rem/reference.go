package rem

import (
	"fmt"
	"strings"
)

// Reference categories. Property records point into these lookup tables by
// (category, code); regions are parented to provinces via ParentCode.
const (
	CategoryProvince     = "01"
	CategoryRegion       = "02"
	CategoryPropertyType = "03"
	CategoryBuildType    = "04"
	CategoryOfferType    = "06"
)

// ReferenceEntry is one row of a reference lookup table.
type ReferenceEntry struct {
	Category   string
	Code       string
	Name       string
	ParentCode string
}

// Validate checks the fields that must hold before a reference entry is written.
func (e *ReferenceEntry) Validate() error {
	switch e.Category {
	case CategoryProvince, CategoryRegion, CategoryPropertyType, CategoryBuildType, CategoryOfferType:
	default:
		return fmt.Errorf("unknown reference category: %q", e.Category)
	}
	if strings.TrimSpace(e.Code) == "" {
		return fmt.Errorf("reference code is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("reference name is required")
	}
	return nil
}
