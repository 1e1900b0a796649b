package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDate  = "2025-05-01"
	testEarth = "Earth"
)

func strPtr(s string) *string { return &s }

func hazardous(name string, minKm, maxKm float64, speed string) RawBody {
	return RawBody{
		Name:              name,
		Hazardous:         true,
		EstimatedDiameter: EstimatedDiameter{Kilometers: DiameterRange{Min: minKm, Max: maxKm}},
		CloseApproaches: []CloseApproach{{
			Date:             strPtr(testDate),
			OrbitingBody:     strPtr(testEarth),
			RelativeVelocity: RelativeVelocity{KilometersPerHour: speed},
		}},
	}
}

func names(asteroids []Asteroid) []string {
	out := make([]string, len(asteroids))
	for i, a := range asteroids {
		out[i] = a.Name
	}
	return out
}

func TestSelectTopHazardous_TopThreeByDiameter(t *testing.T) {
	feed := FeedResponse{NearEarthObjects: map[string][]RawBody{
		testDate: {
			hazardous("Ast1", 1.1, 2.1, "1234.5"),
			hazardous("Ast2", 2.1, 3.1, "2234.5"),
			hazardous("Ast3", 3.1, 4.1, "3234.5"),
			hazardous("Ast4", 0.1, 0.2, "5234.5"),
		},
	}}

	result := SelectTopHazardous(feed, MaxResults)

	require.Len(t, result, 3)
	assert.Equal(t, []string{"Ast3", "Ast2", "Ast1"}, names(result))
	assert.InDelta(t, 3.6, result[0].Diameter, 1e-9)
	assert.InDelta(t, 2.6, result[1].Diameter, 1e-9)
	assert.InDelta(t, 1.6, result[2].Diameter, 1e-9)
	assert.NotContains(t, names(result), "Ast4")
	assert.Equal(t, 1234.5, result[2].Speed)
}

func TestSelectTopHazardous_NoHazardous(t *testing.T) {
	safe := hazardous("SafeAsteroid", 0.1, 0.3, "1234")
	safe.Hazardous = false
	feed := FeedResponse{NearEarthObjects: map[string][]RawBody{testDate: {safe}}}

	result := SelectTopHazardous(feed, MaxResults)

	require.NotNil(t, result)
	assert.Empty(t, result)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestSelectTopHazardous_EmptyFeed(t *testing.T) {
	result := SelectTopHazardous(FeedResponse{}, MaxResults)
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestSelectTopHazardous_FewerThanLimit(t *testing.T) {
	feed := FeedResponse{NearEarthObjects: map[string][]RawBody{
		testDate: {hazardous("Only", 1, 2, "10")},
	}}

	result := SelectTopHazardous(feed, MaxResults)
	assert.Equal(t, []string{"Only"}, names(result))
}

func TestSelectTopHazardous_StableOnTies(t *testing.T) {
	feed := FeedResponse{NearEarthObjects: map[string][]RawBody{
		testDate: {
			hazardous("first", 1, 1, "1"),
			hazardous("big", 5, 5, "1"),
			hazardous("second", 1, 1, "1"),
			hazardous("third", 1, 1, "1"),
		},
	}}

	result := SelectTopHazardous(feed, MaxResults)
	assert.Equal(t, []string{"big", "first", "second"}, names(result))
}

func TestSelectTopHazardous_MultipleDates(t *testing.T) {
	feed := FeedResponse{NearEarthObjects: map[string][]RawBody{
		"2025-05-02": {hazardous("b1", 2, 2, "1"), hazardous("b2", 0.5, 0.5, "1")},
		"2025-05-01": {hazardous("a1", 3, 3, "1"), hazardous("a2", 0.5, 0.5, "1")},
		"2025-05-03": {hazardous("c1", 1, 1, "1")},
	}}

	result := SelectTopHazardous(feed, MaxResults)

	require.Len(t, result, 3)
	assert.Equal(t, []string{"a1", "b1", "c1"}, names(result))
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Diameter, result[i].Diameter)
	}
}

func TestSelectTopHazardous_NeverExceedsLimit(t *testing.T) {
	var group []RawBody
	for i := range 20 {
		group = append(group, hazardous("ast", float64(i), float64(i+1), "1"))
	}
	feed := FeedResponse{NearEarthObjects: map[string][]RawBody{testDate: group}}

	for limit := range 5 {
		assert.LessOrEqual(t, len(SelectTopHazardous(feed, limit)), limit)
	}
}

func TestFlattenFeed_KeepsGroupOrder(t *testing.T) {
	feed := FeedResponse{NearEarthObjects: map[string][]RawBody{
		"2025-05-02": {{Name: "x"}, {Name: "y"}},
		"2025-05-01": {{Name: "p"}, {Name: "q"}, {Name: "r"}},
	}}

	bodies := FlattenFeed(feed)

	got := make([]string, len(bodies))
	for i, b := range bodies {
		got[i] = b.Name
	}
	assert.Equal(t, []string{"p", "q", "r", "x", "y"}, got)
}

func TestToAsteroid(t *testing.T) {
	t.Run("first close approach", func(t *testing.T) {
		body := hazardous("Apophis", 0.3, 0.4, "1234.5")
		body.CloseApproaches = append(body.CloseApproaches, CloseApproach{
			Date:             strPtr("2029-04-13"),
			OrbitingBody:     strPtr("Moon"),
			RelativeVelocity: RelativeVelocity{KilometersPerHour: "99999"},
		})

		want := Asteroid{
			Name:     "Apophis",
			Diameter: 0.35,
			Speed:    1234.5,
			Date:     strPtr(testDate),
			Planet:   strPtr(testEarth),
		}
		if diff := cmp.Diff(want, ToAsteroid(body)); diff != "" {
			t.Fatalf("asteroid mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no close approach", func(t *testing.T) {
		body := hazardous("Lonely", 1, 3, "")
		body.CloseApproaches = nil

		a := ToAsteroid(body)

		assert.Equal(t, 2.0, a.Diameter)
		assert.Equal(t, 0.0, a.Speed)
		assert.Nil(t, a.Date)
		assert.Nil(t, a.Planet)

		data, err := json.Marshal(a)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Lonely","diameter":2,"speed":0,"date":null,"planet":null}`, string(data))
	})

	t.Run("empty strings are not absent", func(t *testing.T) {
		body := hazardous("Blank", 1, 1, "1")
		body.CloseApproaches[0].Date = strPtr("")
		body.CloseApproaches[0].OrbitingBody = strPtr("")

		a := ToAsteroid(body)

		require.NotNil(t, a.Date)
		require.NotNil(t, a.Planet)
		assert.Empty(t, *a.Date)
		assert.Empty(t, *a.Planet)
	})
}

func TestParseFloatOrZero(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"decimal", "1234.5", 1234.5},
		{"long decimal", "48213.2471826237", 48213.2471826237},
		{"integer", "1234", 1234},
		{"surrounding spaces", "  12.5 ", 12.5},
		{"empty", "", 0},
		{"garbage", "fast", 0},
		{"grouping comma", "1,234.5", 0},
		{"decimal comma", "1234,5", 0},
		{"NaN", "NaN", 0},
		{"infinity", "Inf", 0},
		{"infinity spelled out", "-infinity", 0},
		{"exponent", "1.5e3", 1500},
		{"signed", "+12.5", 12.5},
		{"leading dot", ".5", 0.5},
		{"hex float", "0x1p3", 0},
		{"hex integer", "0x10", 0},
		{"underscores", "1_000", 0},
		{"dangling exponent", "12e", 0},
		{"lone dot", ".", 0},
		{"overflow", "1e400", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseFloatOrZero(tt.input))
		})
	}
}

func TestAverageDiameter(t *testing.T) {
	assert.InDelta(t, 1.6, AverageDiameter(DiameterRange{Min: 1.1, Max: 2.1}), 1e-9)
	assert.InDelta(t, 0.15, AverageDiameter(DiameterRange{Min: 0.1, Max: 0.2}), 1e-9)
	assert.Equal(t, 0.0, AverageDiameter(DiameterRange{}))
}

func TestFeedResponse_UnmarshalFeedJSON(t *testing.T) {
	data := []byte(`{
		"element_count": 2,
		"near_earth_objects": {
			"2025-05-01": [
				{
					"name": "(2015 AB)",
					"is_potentially_hazardous_asteroid": true,
					"estimated_diameter": {
						"kilometers": {"estimated_diameter_min": 0.2, "estimated_diameter_max": 0.4},
						"meters": {"estimated_diameter_min": 200, "estimated_diameter_max": 400}
					},
					"close_approach_data": [
						{
							"close_approach_date": "2025-05-01",
							"relative_velocity": {"kilometers_per_second": "13.4", "kilometers_per_hour": "48213.2471826237"},
							"orbiting_body": "Earth"
						}
					]
				},
				{
					"name": "(2020 XY)",
					"is_potentially_hazardous_asteroid": false,
					"estimated_diameter": {"kilometers": {"estimated_diameter_min": 0.01, "estimated_diameter_max": 0.02}},
					"close_approach_data": []
				}
			]
		}
	}`)

	var feed FeedResponse
	require.NoError(t, json.Unmarshal(data, &feed))

	result := SelectTopHazardous(feed, MaxResults)
	require.Len(t, result, 1)
	assert.Equal(t, "(2015 AB)", result[0].Name)
	assert.InDelta(t, 0.3, result[0].Diameter, 1e-9)
	assert.Equal(t, 48213.2471826237, result[0].Speed)
	assert.Equal(t, testDate, *result[0].Date)
	assert.Equal(t, testEarth, *result[0].Planet)
}
