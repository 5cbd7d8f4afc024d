// Package seed provides city reference data and fake demo data for the
// application database. The fake data helpers are intended for development only.
package seed

import (
	"fmt"
	"os"
	"strings"

	"cafehub/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInCities is the city reference data every environment starts with.
var BuiltInCities = []models.City{
	{Code: "sf", Name: "San Francisco", State: "CA"},
	{Code: "berk", Name: "Berkeley", State: "CA"},
	{Code: "oak", Name: "Oakland", State: "CA"},
	{Code: "sj", Name: "San Jose", State: "CA"},
	{Code: "pa", Name: "Palo Alto", State: "CA"},
	{Code: "la", Name: "Los Angeles", State: "CA"},
	{Code: "sea", Name: "Seattle", State: "WA"},
	{Code: "pdx", Name: "Portland", State: "OR"},
	{Code: "nyc", Name: "New York", State: "NY"},
	{Code: "chi", Name: "Chicago", State: "IL"},
}

// Cities upserts BuiltInCities keyed on code. Running it twice is harmless.
func Cities(db *gorm.DB) error {
	return UpsertCities(db, BuiltInCities)
}

type cityFile struct {
	Cities []struct {
		Code  string `yaml:"code"`
		Name  string `yaml:"name"`
		State string `yaml:"state"`
	} `yaml:"cities"`
}

// ParseCities decodes a YAML document of the form
//
//	cities:
//	  - {code: sf, name: San Francisco, state: CA}
func ParseCities(data []byte) ([]models.City, error) {
	var doc cityFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse cities: %w", err)
	}

	cities := make([]models.City, 0, len(doc.Cities))
	seen := make(map[string]bool, len(doc.Cities))
	for i, c := range doc.Cities {
		code := strings.ToLower(strings.TrimSpace(c.Code))
		if code == "" || strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("city #%d: code and name are required", i+1)
		}
		if seen[code] {
			return nil, fmt.Errorf("city #%d: duplicate code %q", i+1, code)
		}
		seen[code] = true
		cities = append(cities, models.City{
			Code:  code,
			Name:  strings.TrimSpace(c.Name),
			State: strings.TrimSpace(c.State),
		})
	}
	return cities, nil
}

// LoadCitiesFile reads and parses a YAML city list from path.
func LoadCitiesFile(path string) ([]models.City, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cities file: %w", err)
	}
	return ParseCities(data)
}

// UpsertCities inserts cities or refreshes the name and state of existing codes.
func UpsertCities(db *gorm.DB, src []models.City) error {
	if len(src) == 0 {
		return nil
	}
	cities := make([]models.City, len(src))
	copy(cities, src)

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "state"}),
	}).Create(&cities).Error
}
