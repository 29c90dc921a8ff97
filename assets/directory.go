package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrAssetMissing is returned when a symbolic key is not in the directory.
var ErrAssetMissing = errors.New("assets: missing asset")

// TextureSpec describes one texture or filmstrip. Either Path names an image
// in the asset filesystem or Color fills a Width×Height placeholder.
type TextureSpec struct {
	Path   string `yaml:"path"`
	Color  string `yaml:"color"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Frames int    `yaml:"frames"`
}

type FontSpec struct {
	Face string `yaml:"face"`
}

// Manifest maps symbolic keys (game:player, platform:cloud0, ...) to assets.
type Manifest struct {
	Textures  map[string]TextureSpec `yaml:"textures"`
	Fonts     map[string]FontSpec    `yaml:"fonts"`
	Documents map[string]string      `yaml:"documents"`
}

// Texture is a loaded texture handle. Width and Height are the natural size
// of one frame in pixels.
type Texture struct {
	Key    string
	Path   string
	Color  string
	Width  int
	Height int
	Frames int
}

type Font struct {
	Key  string
	Face string
}

type entryKind int

const (
	entryTexture entryKind = iota
	entryFont
	entryDocument
)

type entry struct {
	kind entryKind
	key  string
}

// Directory resolves symbolic asset keys. Entries are loaded incrementally
// with Update so a loading screen can report progress.
type Directory struct {
	fsys     fs.FS
	manifest Manifest

	pending []entry
	total   int

	textures  map[string]Texture
	fonts     map[string]Font
	documents map[string][]byte
}

// Open parses the manifest at name inside fsys. No entry is loaded yet.
func Open(fsys fs.FS, name string) (*Directory, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("assets: read manifest %s: %w", name, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("assets: unmarshal manifest %s: %w", name, err)
	}

	d := &Directory{
		fsys:      fsys,
		manifest:  m,
		textures:  make(map[string]Texture, len(m.Textures)),
		fonts:     make(map[string]Font, len(m.Fonts)),
		documents: make(map[string][]byte, len(m.Documents)),
	}
	for _, key := range sortedKeys(m.Textures) {
		d.pending = append(d.pending, entry{kind: entryTexture, key: key})
	}
	for _, key := range sortedKeys(m.Fonts) {
		d.pending = append(d.pending, entry{kind: entryFont, key: key})
	}
	for _, key := range sortedKeys(m.Documents) {
		d.pending = append(d.pending, entry{kind: entryDocument, key: key})
	}
	d.total = len(d.pending)
	return d, nil
}

// Update loads up to budget pending entries. It reports whether every entry
// has been loaded.
func (d *Directory) Update(budget int) (bool, error) {
	for ; budget > 0 && len(d.pending) > 0; budget-- {
		next := d.pending[0]
		if err := d.load(next); err != nil {
			return false, err
		}
		d.pending = d.pending[1:]
	}
	return d.Done(), nil
}

// LoadAll loads every pending entry.
func (d *Directory) LoadAll() error {
	_, err := d.Update(len(d.pending))
	return err
}

func (d *Directory) Done() bool {
	return len(d.pending) == 0
}

// Progress is the loaded fraction in [0, 1].
func (d *Directory) Progress() float64 {
	if d.total == 0 {
		return 1
	}
	return float64(d.total-len(d.pending)) / float64(d.total)
}

func (d *Directory) load(e entry) error {
	switch e.kind {
	case entryTexture:
		spec := d.manifest.Textures[e.key]
		tex, err := d.loadTexture(e.key, spec)
		if err != nil {
			return err
		}
		d.textures[e.key] = tex
	case entryFont:
		d.fonts[e.key] = Font{Key: e.key, Face: d.manifest.Fonts[e.key].Face}
	case entryDocument:
		name := d.manifest.Documents[e.key]
		data, err := fs.ReadFile(d.fsys, name)
		if err != nil {
			return fmt.Errorf("assets: load %s (%s): %w", e.key, name, err)
		}
		d.documents[e.key] = data
	}
	return nil
}

func (d *Directory) loadTexture(key string, spec TextureSpec) (Texture, error) {
	frames := spec.Frames
	if frames <= 0 {
		frames = 1
	}
	tex := Texture{Key: key, Path: spec.Path, Color: spec.Color, Width: spec.Width, Height: spec.Height, Frames: frames}
	if spec.Path != "" {
		data, err := fs.ReadFile(d.fsys, spec.Path)
		if err != nil {
			return Texture{}, fmt.Errorf("assets: load %s (%s): %w", key, spec.Path, err)
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return Texture{}, fmt.Errorf("assets: decode %s (%s): %w", key, spec.Path, err)
		}
		tex.Width, tex.Height = cfg.Width, cfg.Height
	}
	if tex.Width <= 0 || tex.Height <= 0 {
		return Texture{}, fmt.Errorf("assets: texture %s has no size", key)
	}
	tex.Width /= frames
	return tex, nil
}

// Texture returns the texture registered under key.
func (d *Directory) Texture(key string) (Texture, error) {
	tex, ok := d.textures[key]
	if !ok {
		return Texture{}, fmt.Errorf("%w: %s", ErrAssetMissing, key)
	}
	return tex, nil
}

func (d *Directory) HasTexture(key string) bool {
	_, ok := d.textures[key]
	return ok
}

func (d *Directory) Font(key string) (Font, error) {
	f, ok := d.fonts[key]
	if !ok {
		return Font{}, fmt.Errorf("%w: %s", ErrAssetMissing, key)
	}
	return f, nil
}

// Document returns the raw bytes of a JSON document such as global:constants.
func (d *Directory) Document(key string) ([]byte, error) {
	data, ok := d.documents[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetMissing, key)
	}
	return data, nil
}

// Constants decodes the global:constants document.
func (d *Directory) Constants() (*Constants, error) {
	data, err := d.Document(ConstantsKey)
	if err != nil {
		return nil, err
	}
	return ParseConstants(data)
}

// ReadFile reads a raw file from the asset filesystem.
func (d *Directory) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(d.fsys, cleanAssetPath(name))
}

// TextureKeys lists loaded texture keys in sorted order.
func (d *Directory) TextureKeys() []string {
	return sortedKeys(d.textures)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cleanAssetPath(p string) string {
	s := path.Clean(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(s, "assets/")
}
