package models

import (
	"strconv"
	"strings"
	"time"
)

// BloodworkMarker stores value and range bounds as text on purpose: lab
// reports mix numeric results with qualitative ones ("Negative", "<0.5"),
// and the original formatting must survive a round trip.
type BloodworkMarker struct {
	BaseUUIDModel
	LabResultID string     `gorm:"type:varchar(64);not null;index" json:"labResultId"`
	UserID      string     `gorm:"type:varchar(64);not null;index" json:"userId"`
	User        *User      `gorm:"foreignKey:UserID"               json:"-"`
	Name        string     `gorm:"type:varchar(255);not null"      json:"name"`
	Value       string     `gorm:"type:varchar(255);not null"      json:"value"`
	Unit        *string    `gorm:"type:varchar(64)"                json:"unit"`
	MinRange    *string    `gorm:"type:varchar(64)"                json:"minRange"`
	MaxRange    *string    `gorm:"type:varchar(64)"                json:"maxRange"`
	IsAbnormal  bool       `gorm:"not null;default:false"          json:"isAbnormal"`
	Category    *string    `gorm:"type:varchar(128)"               json:"category"`
	ResultDate  *time.Time `json:"resultDate"`
}

// CreateBloodworkMarkerRequest is the insert shape used by marker extraction.
// IsAbnormal is supplied by the extractor; it is never recomputed on read.
type CreateBloodworkMarkerRequest struct {
	Name       string     `json:"name"`
	Value      string     `json:"value"`
	Unit       *string    `json:"unit"`
	MinRange   *string    `json:"minRange"`
	MaxRange   *string    `json:"maxRange"`
	IsAbnormal *bool      `json:"isAbnormal"`
	Category   *string    `json:"category"`
	ResultDate *time.Time `json:"resultDate"`
}

// NumericValue attempts to parse the stored text value as a number. It
// tolerates leading comparators ("<0.5", ">10") and surrounding whitespace.
func (m *BloodworkMarker) NumericValue() (float64, bool) {
	return parseMarkerNumber(m.Value)
}

// NumericRange parses the min/max bounds. Either bound may be absent.
func (m *BloodworkMarker) NumericRange() (min, max float64, ok bool) {
	if m.MinRange == nil || m.MaxRange == nil {
		return 0, 0, false
	}
	min, okMin := parseMarkerNumber(*m.MinRange)
	max, okMax := parseMarkerNumber(*m.MaxRange)
	return min, max, okMin && okMax
}

// DeriveMarkerAbnormal flags a value outside its reference range. Qualitative
// values never derive a flag; the extractor supplies one explicitly if needed.
func DeriveMarkerAbnormal(value string, minRange, maxRange *string) bool {
	v, ok := parseMarkerNumber(value)
	if !ok {
		return false
	}
	if minRange != nil {
		if min, ok := parseMarkerNumber(*minRange); ok && v < min {
			return true
		}
	}
	if maxRange != nil {
		if max, ok := parseMarkerNumber(*maxRange); ok && v > max {
			return true
		}
	}
	return false
}

func parseMarkerNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "<>=~")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
