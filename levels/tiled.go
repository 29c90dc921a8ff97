package levels

import (
	"encoding/json"
	"fmt"
)

// Raw Tiled map JSON. Only object layers are read; tile layers are ignored.
type tiledMap struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	TileWidth  int          `json:"tilewidth"`
	TileHeight int          `json:"tileheight"`
	Layers     []tiledLayer `json:"layers"`
	Properties []tiledProp  `json:"properties"`
}

type tiledLayer struct {
	Name    string        `json:"name"`
	Type    string        `json:"type"`
	Objects []tiledObject `json:"objects"`
}

type tiledObject struct {
	ID         int          `json:"id"`
	Name       string       `json:"name"`
	Type       string       `json:"type"`
	X          float64      `json:"x"`
	Y          float64      `json:"y"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Point      bool         `json:"point"`
	Polygon    []tiledPoint `json:"polygon"`
	Polyline   []tiledPoint `json:"polyline"`
	Properties []tiledProp  `json:"properties"`
}

type tiledPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type tiledProp struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type props []tiledProp

func (p props) find(name string) (tiledProp, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop, true
		}
	}
	return tiledProp{}, false
}

func (p props) number(name string, fallback float64) (float64, error) {
	prop, ok := p.find(name)
	if !ok {
		return fallback, nil
	}
	var v float64
	if err := json.Unmarshal(prop.Value, &v); err != nil {
		return 0, fmt.Errorf("%w: property %q is not a number", ErrMalformed, name)
	}
	return v, nil
}

func (p props) integer(name string, fallback int) (int, error) {
	prop, ok := p.find(name)
	if !ok {
		return fallback, nil
	}
	var v int
	if err := json.Unmarshal(prop.Value, &v); err != nil {
		return 0, fmt.Errorf("%w: property %q is not an integer", ErrMalformed, name)
	}
	return v, nil
}

func (p props) text(name, fallback string) (string, error) {
	prop, ok := p.find(name)
	if !ok {
		return fallback, nil
	}
	var v string
	if err := json.Unmarshal(prop.Value, &v); err != nil {
		return "", fmt.Errorf("%w: property %q is not a string", ErrMalformed, name)
	}
	return v, nil
}

// object returns the id of a referenced object, or 0 when unset.
func (p props) object(name string) (int, error) {
	return p.integer(name, 0)
}
