package pipeline

import (
	"testing"
)

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"embed", Options{Document: "doc.md", Mode: ModeEmbed, SpaceLines: 20}, false},
		{"rename", Options{Document: "doc.md", Mode: ModeRename}, false},
		{"empty mode defaults to embed", Options{Document: "doc.md"}, false},
		{"unknown mode", Options{Document: "doc.md", Mode: "compress"}, true},
		{"missing document", Options{Mode: ModeEmbed}, true},
		{"negative spacelines", Options{Document: "doc.md", SpaceLines: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmptyModeDefault(t *testing.T) {
	opts := Options{Document: "doc.md"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Mode != ModeEmbed {
		t.Errorf("Mode = %q, want %q", opts.Mode, ModeEmbed)
	}
}
