package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"resty.dev/v3"

	"ursa-server/spatial-api/internal/config"
	"ursa-server/spatial-api/internal/utils/httpclients"
	"ursa-server/spatial-api/internal/utils/platformerrors"
)

// Client talks to a Nominatim-compatible geocoding service. There is no
// caching, rate limiting or retry here: a provider failure surfaces as an
// EXTERNAL error.
type Client struct {
	http  *resty.Client
	email string
}

func NewClient(cfg *config.Config) *Client {
	client := httpclients.NewClient("NominatimClient")
	client.SetBaseURL(cfg.NominatimBaseURL)
	client.SetHeader("User-Agent", cfg.NominatimUserAgent)
	client.SetHeader("Accept", "application/json")
	client.SetTimeout(cfg.NominatimTimeout)
	return &Client{http: client, email: cfg.NominatimEmail}
}

// Place is one forward-geocode candidate. Raw keeps the provider's exact JSON
// so passthrough endpoints can return it unmodified.
type Place struct {
	Lat         string          `json:"lat"`
	Lon         string          `json:"lon"`
	DisplayName string          `json:"display_name"`
	Raw         json.RawMessage `json:"-"`
}

func (p *Place) UnmarshalJSON(data []byte) error {
	type alias Place
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Place(decoded)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Coordinates parses the provider's string-typed lat/lon pair.
func (p *Place) Coordinates() (float64, float64, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	return lat, lon, nil
}

// ReverseResult is a single reverse-geocode descriptor.
type ReverseResult struct {
	DisplayName string          `json:"display_name"`
	Address     map[string]any  `json:"address"`
	Raw         json.RawMessage `json:"-"`
}

func (r *ReverseResult) UnmarshalJSON(data []byte) error {
	type alias ReverseResult
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = ReverseResult(decoded)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Search forward-geocodes a free-text query and returns the provider-ordered
// candidate list.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	var places []Place
	resp, err := c.prepareRequest(ctx).
		SetQueryParam("q", query).
		SetResult(&places).
		Get("/search")
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"geocoding request failed", err)
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(ctx, resp, "geocoding request failed")
	}
	return places, nil
}

// Reverse looks up the address for a latitude/longitude pair.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*ReverseResult, error) {
	var result ReverseResult
	resp, err := c.prepareRequest(ctx).
		SetQueryParam("lat", strconv.FormatFloat(lat, 'f', -1, 64)).
		SetQueryParam("lon", strconv.FormatFloat(lon, 'f', -1, 64)).
		SetResult(&result).
		Get("/reverse")
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"reverse geocoding request failed", err)
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(ctx, resp, "reverse geocoding request failed")
	}
	return &result, nil
}

func (c *Client) prepareRequest(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx).SetQueryParam("format", "json")
	// Nominatim asks bulk users to identify themselves with a contact email.
	if c.email != "" {
		req.SetQueryParam("email", c.email)
	}
	return req
}

func (c *Client) errorFromResponse(ctx context.Context, resp *resty.Response, message string) error {
	detail := strings.TrimSpace(resp.String())
	if detail == "" {
		detail = resp.Status()
	}
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("%s: %s", message, detail), nil)
}
