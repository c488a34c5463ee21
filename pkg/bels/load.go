package bels

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type catalogFile struct {
	TileTypes []struct {
		Name string `toml:"name"`
		Bels []Bel  `toml:"bel"`
	} `toml:"tiletype"`
}

// Parse decodes a TOML bel catalog.
func Parse(data []byte) (Map, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode bel catalog: %w", err)
	}

	m := make(Map, len(f.TileTypes))
	for _, tt := range f.TileTypes {
		if tt.Name == "" {
			return nil, fmt.Errorf("bel catalog: tile type without name")
		}
		if _, dup := m[tt.Name]; dup {
			return nil, fmt.Errorf("bel catalog: duplicate tile type %q", tt.Name)
		}
		for _, bel := range tt.Bels {
			for _, pin := range bel.Pins {
				if pin.Name == "" || pin.RelWire.Name == "" {
					return nil, fmt.Errorf("bel catalog: %s/%s has a pin without name or wire", tt.Name, bel.Name)
				}
			}
		}
		m[tt.Name] = tt.Bels
	}
	return m, nil
}

// LoadFile reads a TOML bel catalog from path.
func LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
