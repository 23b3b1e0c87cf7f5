package tool

import (
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Tool names the assistant may invoke.
const (
	NameGeocode        = "geocode"
	NameReverseGeocode = "reverse_geocode"
	NameCreatePin      = "create_pin"
	NameListPins       = "list_pins"
	NameRemovePin      = "remove_pin"
	NameRemovePins     = "remove_pins"
)

// Definitions returns the static tool catalog exposed to the model as
// function-calling metadata.
func Definitions() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name: NameGeocode,
				Description: "Search for a place by name. If one clear result is found, " +
					"return status=resolved with lat/lon. If multiple results are " +
					"possible, return status=ambiguous with a short list of candidates.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"query": {Type: jsonschema.String},
					},
					Required: []string{"query"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        NameReverseGeocode,
				Description: "Look up the address for a latitude/longitude pair.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"lat": {Type: jsonschema.Number},
						"lon": {Type: jsonschema.Number},
					},
					Required: []string{"lat", "lon"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        NameCreatePin,
				Description: "Create a new pin with a title and optional notes.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"lat":   {Type: jsonschema.Number},
						"lon":   {Type: jsonschema.Number},
						"title": {Type: jsonschema.String},
						"notes": {Type: jsonschema.String},
					},
					Required: []string{"lat", "lon", "title"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        NameListPins,
				Description: "List pins within an optional bounding box.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"bbox": {
							Type:  jsonschema.Array,
							Items: &jsonschema.Definition{Type: jsonschema.Number},
						},
					},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        NameRemovePin,
				Description: "Remove a single pin by ID.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"id": {Type: jsonschema.String},
					},
					Required: []string{"id"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        NameRemovePins,
				Description: "Remove multiple pins by ID, or remove all pins when no IDs are provided.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"ids": {
							Type:  jsonschema.Array,
							Items: &jsonschema.Definition{Type: jsonschema.String},
						},
					},
				},
			},
		},
	}
}
