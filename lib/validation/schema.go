package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// PlaylistSchema defines the parts of a playlist file that reports rely on.
// Playlists exported by the launcher carry more fields; they are allowed.
var PlaylistSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"games": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"gameId": {"type": "string", "minLength": 1}
				},
				"required": ["gameId"]
			}
		}
	},
	"required": ["games"]
}`

var playlistSchemaLoader = gojsonschema.NewStringLoader(PlaylistSchema)

// ValidatePlaylist validates a playlist document against PlaylistSchema.
func ValidatePlaylist(jsonData []byte) error {
	documentLoader := gojsonschema.NewBytesLoader(jsonData)

	result, err := gojsonschema.Validate(playlistSchemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate playlist: %w", err)
	}

	if !result.Valid() {
		var errorMessages []string
		for _, desc := range result.Errors() {
			errorMessages = append(errorMessages, desc.String())
		}
		return fmt.Errorf("invalid playlist: %s", strings.Join(errorMessages, "; "))
	}

	return nil
}
