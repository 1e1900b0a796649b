// Package domain models the NASA Near Earth Object Web Service (NeoWs) feed
// and the hazard ranking derived from it.
//
// # Data Source
//
// The feed endpoint (https://api.nasa.gov/neo/rest/v1/feed) returns every
// near-Earth object with a close approach inside an inclusive date window,
// grouped by calendar date:
//
//	{"near_earth_objects": {"2025-05-01": [ {...}, {...} ], "2025-05-02": [...]}}
//
// The feed rejects windows longer than seven days, which is why callers are
// limited to 1–7 days.
//
// # Feed Conventions
//
// Diameter:
//
//	estimated_diameter.kilometers.{estimated_diameter_min, estimated_diameter_max}
//	are JSON numbers. The ranking metric is their mean ([AverageDiameter]).
//	min <= max is expected but not checked.
//
// Velocity:
//
//	close_approach_data[].relative_velocity.kilometers_per_hour is a decimal
//	string such as "48213.2471826237". Only plain decimal notation with '.'
//	as the separator and an optional exponent is accepted. Grouping commas,
//	hex floats, underscores, NaN, Inf and garbage parse as 0.
//
// Close approaches:
//
//	Only the first entry is used. An object may have none, in which case the
//	result has speed 0 and no date or orbiting body.
//
// # Ranking
//
// [SelectTopHazardous] flattens the per-date groups in ascending date order,
// keeps objects flagged is_potentially_hazardous_asteroid, and returns the
// largest [MaxResults] by average diameter. The sort is stable so objects with
// equal diameters keep feed order.
package domain
