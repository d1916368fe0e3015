package errors

import (
	"strings"
	"testing"
)

func TestValidateTileID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "wifi", false},
		{"valid with dash", "mobile-data", false},
		{"valid with underscore", "auto_rotate", false},
		{"valid with colon", "custom:torch", false},
		{"valid with dot", "tile.1", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"space", "wi fi", true},
		{"leading dash", "-wifi", true},
		{"slash", "a/b", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTileID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTileID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTile) {
				t.Errorf("ValidateTileID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidTile)
			}
		})
	}
}

func TestValidateSettingKey(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"quick_tiles_per_row", false},
		{"quick_settings_cell_gap", false},
		{"a1", false},
		{"", true},
		{"Quick", true},
		{"1abc", true},
		{"quick-tiles", true},
		{"quick tiles", true},
	}

	for _, tt := range tests {
		err := ValidateSettingKey(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSettingKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "tiles.json", false},
		{"nested", "layouts/phone/tiles.toml", false},
		{"absolute", "/tmp/tiles.json", false},

		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"null byte", "tiles\x00.json", true},
		{"too long", strings.Repeat("a", 600), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		schemes []string
		wantErr bool
	}{
		{"redis://localhost:6379/0", []string{"redis", "rediss"}, false},
		{"rediss://cache:6380", []string{"redis", "rediss"}, false},
		{"mongodb://localhost:27017", []string{"mongodb", "mongodb+srv"}, false},
		{"http://localhost", []string{"redis"}, true},
		{"", []string{"redis"}, true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.input, tt.schemes...)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
