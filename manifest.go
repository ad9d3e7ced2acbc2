package crispfont

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional preload list from spec §6: a flat list of
// id-strings the caller wants loaded up front.
type Manifest struct {
	Fonts []string `yaml:"fonts"`
}

// LoadManifest parses a YAML manifest document.
func LoadManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("crispfont: parse manifest: %w", err)
	}
	return m, nil
}

// Identities parses every id-string in the manifest, returning the first
// parse error encountered, if any.
func (m Manifest) Identities() ([]FontIdentity, error) {
	ids := make([]FontIdentity, 0, len(m.Fonts))
	for _, s := range m.Fonts {
		id, err := ParseFontIdentity(s)
		if err != nil {
			return nil, fmt.Errorf("crispfont: manifest entry %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
