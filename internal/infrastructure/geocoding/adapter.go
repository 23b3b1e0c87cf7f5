package geocoding

import (
	"context"

	"ursa-server/spatial-api/internal/domain/tool"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// ToolGeocoder adapts the Nominatim client to the tool executor, parsing the
// provider's string-typed coordinates into numbers.
type ToolGeocoder struct {
	client *Client
}

var _ tool.Geocoder = (*ToolGeocoder)(nil)

func NewToolGeocoder(client *Client) *ToolGeocoder {
	return &ToolGeocoder{client: client}
}

func (g *ToolGeocoder) Geocode(ctx context.Context, query string) ([]tool.GeocodeCandidate, error) {
	places, err := g.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	candidates := make([]tool.GeocodeCandidate, 0, len(places))
	for _, place := range places {
		lat, lon, err := place.Coordinates()
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
				"geocoding provider returned unparseable coordinates", err)
		}
		candidates = append(candidates, tool.GeocodeCandidate{
			Label: place.DisplayName,
			Lat:   lat,
			Lon:   lon,
		})
	}
	return candidates, nil
}

func (g *ToolGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (*tool.ReversePlace, error) {
	result, err := g.client.Reverse(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	return &tool.ReversePlace{
		DisplayName: result.DisplayName,
		Address:     result.Address,
	}, nil
}
