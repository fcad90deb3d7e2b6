// Package schema provides database models of the PostgreSQL backend.
package schema

import (
	"strings"
	"time"

	"github.com/gnames/gnloc/pkg/location"
	"github.com/gnames/gnuuid"
)

// Country is a row of the countries table. Countries are entered by
// users, every other level is backfilled from the geo-data API.
type Country struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex"`
	Code      string    `gorm:"column:code;type:varchar(3);index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName returns the table name of the model.
func (Country) TableName() string { return "countries" }

// Region is a row of the regions table.
type Region struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey"`
	CountryID  string    `gorm:"column:country_id;type:uuid;not null;index"`
	Name       string    `gorm:"column:name;type:varchar(255);not null;index"`
	Code       string    `gorm:"column:code;type:varchar(10)"`
	WikiDataID string    `gorm:"column:wiki_data_id;type:varchar(32);uniqueIndex"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName returns the table name of the model.
func (Region) TableName() string { return "regions" }

// Division is a row of the divisions table.
type Division struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey"`
	CountryID  string    `gorm:"column:country_id;type:uuid;not null;index"`
	RegionID   string    `gorm:"column:region_id;type:uuid;not null;index"`
	Name       string    `gorm:"column:name;type:varchar(255);not null;index"`
	WikiDataID string    `gorm:"column:wiki_data_id;type:varchar(32);uniqueIndex"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName returns the table name of the model.
func (Division) TableName() string { return "divisions" }

// City is a row of the cities table. DivisionID is NULL for cities
// that are not inside a known division.
type City struct {
	ID              string    `gorm:"column:id;type:uuid;primaryKey"`
	CountryID       string    `gorm:"column:country_id;type:uuid;not null;index"`
	RegionID        string    `gorm:"column:region_id;type:uuid;not null;index"`
	DivisionID      *string   `gorm:"column:division_id;type:uuid;index"`
	Name            string    `gorm:"column:name;type:varchar(255);not null;index"`
	WikiDataID      string    `gorm:"column:wiki_data_id;type:varchar(32);uniqueIndex"`
	CountryCode     string    `gorm:"column:country_code;type:varchar(3)"`
	RegionCode      string    `gorm:"column:region_code;type:varchar(10)"`
	Latitude        float64   `gorm:"column:latitude"`
	Longitude       float64   `gorm:"column:longitude"`
	Population      int       `gorm:"column:population"`
	ElevationMeters int       `gorm:"column:elevation_meters"`
	Timezone        string    `gorm:"column:timezone;type:varchar(64)"`
	CellToken       string    `gorm:"column:cell_token;type:varchar(16);index"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

// TableName returns the table name of the model.
func (City) TableName() string { return "cities" }

// RecordID returns a deterministic UUID v5 for a crawled record, so the
// same external record always gets the same local id.
func RecordID(l location.Level, wikiDataID string) string {
	return gnuuid.New(l.String() + ":" + strings.ToUpper(wikiDataID)).String()
}

// CountryID returns a deterministic UUID v5 for a country name.
func CountryID(name string) string {
	return gnuuid.New("country:" + strings.ToLower(strings.TrimSpace(name))).String()
}
