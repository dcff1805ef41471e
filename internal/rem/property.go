package rem

import (
	"fmt"
	"strings"
	"time"
)

// Property statuses offered to callers. The status field is free-form at the
// store level; this list is the canonical set the UI presents.
var PropertyStatuses = []string{"Available", "Sold", "Rented", "Under Contract", "Off Market"}

// DefaultPropertyStatus is assigned when a property is created without one.
const DefaultPropertyStatus = "Available"

// Property is a real-estate record. The code is the primary key:
// 8 characters, a 4-character company prefix (1 uppercase letter + 3 digits)
// followed by 4 digits. Photos holds the filenames of imported photo files,
// persisted as a single ;-delimited column.
type Property struct {
	Code          string
	OwnerCode     string
	TypeCode      string
	BuildTypeCode string
	OfferTypeCode string
	ProvinceCode  string
	RegionCode    string
	Address       string
	Area          float64
	Facade        float64
	Depth         float64
	Bedrooms      int
	Bathrooms     int
	Corner        bool
	YearBuilt     int
	Price         float64
	Status        string
	Photos        []string
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// OwnerName and OwnerPhone are populated by read queries that join the
	// owner record. They are never written back.
	OwnerName  string
	OwnerPhone string
}

// CompanyPrefix returns the 4-character company prefix of the code.
func (p *Property) CompanyPrefix() string {
	if len(p.Code) < 4 {
		return p.Code
	}
	return p.Code[:4]
}

// Validate checks the fields that must hold before a property is written.
func (p *Property) Validate() error {
	if strings.TrimSpace(p.OwnerCode) == "" {
		return fmt.Errorf("owner code is required")
	}
	if strings.TrimSpace(p.TypeCode) == "" {
		return fmt.Errorf("property type is required")
	}
	if strings.TrimSpace(p.Address) == "" {
		return fmt.Errorf("property address is required")
	}
	if p.Area <= 0 {
		return fmt.Errorf("property area must be a positive number")
	}
	if p.Facade < 0 || p.Depth < 0 {
		return fmt.Errorf("facade and depth cannot be negative")
	}
	if p.Bedrooms < 0 || p.Bathrooms < 0 {
		return fmt.Errorf("bedroom and bathroom counts cannot be negative")
	}
	return nil
}

// PropertySearch holds advanced-search criteria. Zero values mean
// "no constraint"; Corner uses a pointer so false is a real filter.
type PropertySearch struct {
	Term          string // matched against code, address and note
	TypeCode      string
	BuildTypeCode string
	OfferTypeCode string
	ProvinceCode  string
	RegionCode    string
	OwnerName     string
	MinArea       float64
	MaxArea       float64
	MinBedrooms   int
	MinBathrooms  int
	Corner        *bool
	MinYear       int
	MaxYear       int
}

// IsZero reports whether no criteria are set.
func (q PropertySearch) IsZero() bool {
	return q.Term == "" && q.TypeCode == "" && q.BuildTypeCode == "" &&
		q.OfferTypeCode == "" && q.ProvinceCode == "" && q.RegionCode == "" &&
		q.OwnerName == "" && q.MinArea == 0 && q.MaxArea == 0 &&
		q.MinBedrooms == 0 && q.MinBathrooms == 0 && q.Corner == nil &&
		q.MinYear == 0 && q.MaxYear == 0
}

// String renders only the set criteria, for report headers and logs.
func (q PropertySearch) String() string {
	var parts []string
	add := func(name, value string) {
		if value != "" {
			parts = append(parts, name+"="+value)
		}
	}
	add("term", q.Term)
	add("type", q.TypeCode)
	add("build", q.BuildTypeCode)
	add("offer", q.OfferTypeCode)
	add("province", q.ProvinceCode)
	add("region", q.RegionCode)
	add("owner", q.OwnerName)
	if q.MinArea > 0 {
		parts = append(parts, fmt.Sprintf("min_area=%g", q.MinArea))
	}
	if q.MaxArea > 0 {
		parts = append(parts, fmt.Sprintf("max_area=%g", q.MaxArea))
	}
	if q.MinBedrooms > 0 {
		parts = append(parts, fmt.Sprintf("min_bedrooms=%d", q.MinBedrooms))
	}
	if q.MinBathrooms > 0 {
		parts = append(parts, fmt.Sprintf("min_bathrooms=%d", q.MinBathrooms))
	}
	if q.Corner != nil {
		parts = append(parts, fmt.Sprintf("corner=%t", *q.Corner))
	}
	if q.MinYear > 0 {
		parts = append(parts, fmt.Sprintf("min_year=%d", q.MinYear))
	}
	if q.MaxYear > 0 {
		parts = append(parts, fmt.Sprintf("max_year=%d", q.MaxYear))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
