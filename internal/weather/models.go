package weather

import (
	"strconv"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Units selects the temperature scale requested from providers.
type Units string

const (
	UnitsUS Units = "us" // Fahrenheit
	UnitsSI Units = "si" // Celsius
)

// Coordinates identify the place a month of temperatures is requested for.
type Coordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// DefaultCoordinates is used when a request carries no lat/long (Portland, OR).
var DefaultCoordinates = Coordinates{Lat: 45.5898, Long: -122.5951}

// String renders the pair the way upstream path segments expect it: "lat,long".
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Long, 'f', -1, 64)
}

// HourlySample is a single hourly temperature reading.
// Time keeps the location it was rendered in; grouping uses that location.
type HourlySample struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
}

// GroupedTemps maps "MM-DD-YYYY" keys to the samples of that day, in first-seen order.
type GroupedTemps = orderedmap.OrderedMap[string, []HourlySample]

// MonthResponse is the success payload: the requested month identifier mapped to its days.
type MonthResponse map[string]*GroupedTemps
