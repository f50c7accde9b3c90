package domain

import "time"

// Document is a schemaless nested map produced by the trailer decoders and
// handed to the stores. Values are string, int, float64, Document or []Document.
type Document map[string]any

// RecordID is the composite primary key of an observation. Field order is
// significant to MongoDB, which compares embedded documents byte-wise.
type RecordID struct {
	StationID string    `json:"st" bson:"st"`
	Timestamp time.Time `json:"ts" bson:"ts"`
}

// Position is a WGS-84 coordinate in decimal degrees.
type Position struct {
	Longitude float64
	Latitude  float64
}

// Point is the GeoJSON form of a Position.
type Point struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// GeoJSON returns the position as a GeoJSON point (longitude first).
func (p Position) GeoJSON() Point {
	return Point{Type: "Point", Coordinates: []float64{p.Longitude, p.Latitude}}
}

// Measurement is a scaled numeric reading with its quality code.
type Measurement struct {
	Value   *float64
	Quality string
}

// IntMeasurement is an unscaled numeric reading with its quality code.
type IntMeasurement struct {
	Value   *int
	Quality string
}

// CodedValue is a categorical reading with its quality code.
type CodedValue struct {
	Value   string
	Quality string
}

// Wind holds the mandatory wind observation.
type Wind struct {
	Direction IntMeasurement // angle in degrees
	Type      string
	Speed     Measurement // metres per second
}

// Visibility holds the mandatory visibility observation.
type Visibility struct {
	Distance    IntMeasurement // metres
	Variability CodedValue
}

// SkyCondition holds the mandatory sky condition observation.
type SkyCondition struct {
	CeilingHeight IntMeasurement // metres
	Determination string
	CAVOK         string
}

// Record is one decoded observation line.
type Record struct {
	StationID             string
	Timestamp             time.Time
	USAF                  string // empty when the source carries the 999999 sentinel
	WBAN                  string // empty when the source carries the 99999 sentinel
	Position              *Position
	Elevation             *int
	CallLetters           string
	QualityControlProcess string
	DataSource            string
	ReportType            string

	AirTemperature Measurement // degrees Celsius
	DewPoint       Measurement // degrees Celsius
	Pressure       Measurement // hectopascals
	Wind           Wind
	Visibility     Visibility
	SkyCondition   SkyCondition

	// Sections lists every trailer marker seen, in input order.
	Sections []string
	// Blocks holds the decoded trailer sections keyed by field name.
	Blocks Document
}

// ID returns the record's composite key.
func (r Record) ID() RecordID {
	return RecordID{StationID: r.StationID, Timestamp: r.Timestamp}
}

// Station is one entry of the station history file.
type Station struct {
	StationID string
	USAF      string
	WBAN      string
	Name      string
	Country   string
	Position  *Position
	Elevation *float64 // metres
	Begin     *time.Time
	End       *time.Time
}

// BulkResult reports the per-item outcome of one unordered bulk insert.
// Duplicates holds the batch indexes rejected for an existing key.
type BulkResult struct {
	Inserted   int
	Duplicates []int
}
