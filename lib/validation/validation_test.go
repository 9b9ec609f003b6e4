package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReleaseDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2015", "2015-01-01"},
		{"2015-06-21", "2015-06-21"},
		{"2015-06", "2015-06-01"},
		{" 2009-11-03 ", "2009-11-03"},
		{"2009-11-03T12:30:00Z", "2009-11-03"},
		{"2009-11-03 12:30:00", "2009-11-03"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseReleaseDate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(DateLayout))
		})
	}
}

func TestParseReleaseDateInvalid(t *testing.T) {
	for _, raw := range []string{"", "soon", "06/21/2015", "2015-13-01", "2015-02-30", "15", "20150621"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseReleaseDate(raw)
			assert.Error(t, err)
		})
	}
}

func TestParseReleaseDateYear(t *testing.T) {
	parsed, err := ParseReleaseDate("1999")
	require.NoError(t, err)
	assert.Equal(t, 1999, parsed.Year())
}

func TestValidatePlaylist(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"valid", `{"title":"Mine","games":[{"gameId":"a"},{"gameId":"b","notes":"x"}]}`, false},
		{"empty games", `{"games":[]}`, false},
		{"missing games", `{"title":"Mine"}`, true},
		{"missing gameId", `{"games":[{"id":"a"}]}`, true},
		{"empty gameId", `{"games":[{"gameId":""}]}`, true},
		{"numeric gameId", `{"games":[{"gameId":7}]}`, true},
		{"not an object", `[]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlaylist([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePlaylistMalformedJSON(t *testing.T) {
	assert.Error(t, ValidatePlaylist([]byte(`{"games":`)))
}
