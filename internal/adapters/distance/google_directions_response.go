package distance

import (
	"encoding/json"
	"fmt"
	"io"

	"visit-route-service/internal/ports"
)

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Value *int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value *int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
		WaypointOrder []int `json:"waypoint_order"`
	} `json:"routes"`
}

// decodeDirections maps the first route of a Directions API payload.
func decodeDirections(r io.Reader) (ports.RouteResult, error) {
	var decoded directionsResponse
	if err := json.NewDecoder(r).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		if decoded.Status != "" && decoded.Status != "OK" {
			return ports.RouteResult{}, fmt.Errorf("%w (status=%s %s)", ErrNoRoutes, decoded.Status, decoded.ErrorMessage)
		}
		return ports.RouteResult{}, ErrNoRoutes
	}

	route := decoded.Routes[0]
	legs := make([]ports.DistanceResult, 0, len(route.Legs))
	for i, leg := range route.Legs {
		if leg.Distance.Value == nil || leg.Duration.Value == nil {
			return ports.RouteResult{}, fmt.Errorf("directions leg %d is missing distance or duration", i)
		}
		legs = append(legs, ports.DistanceResult{
			DistanceMeters:  *leg.Distance.Value,
			DurationSeconds: *leg.Duration.Value,
		})
	}

	return ports.RouteResult{
		Polyline:      route.OverviewPolyline.Points,
		Legs:          legs,
		WaypointOrder: route.WaypointOrder,
	}, nil
}
