package domain

import "time"

// DateLayout is the yyyy-MM-dd format used for feed keys and query parameters.
const DateLayout = "2006-01-02"

// FeedResponse is the decoded feed body: date key -> objects approaching that day.
type FeedResponse struct {
	NearEarthObjects map[string][]RawBody `json:"near_earth_objects"`
}

// RawBody is a single near-Earth object as reported by the feed.
type RawBody struct {
	Name              string            `json:"name"`
	Hazardous         bool              `json:"is_potentially_hazardous_asteroid"`
	EstimatedDiameter EstimatedDiameter `json:"estimated_diameter"`
	CloseApproaches   []CloseApproach   `json:"close_approach_data"`
}

// EstimatedDiameter groups diameter ranges by unit. Only kilometers is used.
type EstimatedDiameter struct {
	Kilometers DiameterRange `json:"kilometers"`
}

// DiameterRange is an estimated min/max diameter.
type DiameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

// CloseApproach is one predicted pass of an object near a body.
type CloseApproach struct {
	Date             *string          `json:"close_approach_date"`
	RelativeVelocity RelativeVelocity `json:"relative_velocity"`
	OrbitingBody     *string          `json:"orbiting_body"`
}

// RelativeVelocity carries the feed's velocity strings.
type RelativeVelocity struct {
	KilometersPerHour string `json:"kilometers_per_hour"`
}

// Asteroid is the ranked result record returned to API callers.
// Date and Planet are nil when the object has no close approach data.
type Asteroid struct {
	Name     string  `json:"name"`
	Diameter float64 `json:"diameter"`
	Speed    float64 `json:"speed"`
	Date     *string `json:"date"`
	Planet   *string `json:"planet"`
}

// HazardReport is the event published after a successful selection.
type HazardReport struct {
	Days        int        `json:"days"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	GeneratedAt time.Time  `json:"generated_at"`
	Asteroids   []Asteroid `json:"asteroids"`
}
