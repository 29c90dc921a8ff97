package assets

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDefaultDirectoryResolvesEveryGameKey(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := d.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	keys := []string{
		PlatformTexture, PlayerTexture, PlayerFrontTexture, UmbrellaTexture,
		UmbrellaClosedTexture, WindTexture, GoalTexture, HPIndicatorTexture,
		BoostTexture, PlayerIdleAnimation, PlayerWalkAnimation,
		PlayerFallingAnimation, UmbrellaOpenAnimation, UmbrellaDodgeAnimation,
		GoalAnimation, BirdWarningTexture, LightningTexture,
	}
	for _, c := range BirdColors {
		keys = append(keys, BirdFlapping(c))
	}
	for i := 0; i < WindFrames; i++ {
		keys = append(keys, WindFrame(i))
	}
	for i := 0; i < CloudTiles; i++ {
		keys = append(keys, CloudTexture(i))
	}
	for _, key := range keys {
		tex, err := d.Texture(key)
		if err != nil {
			t.Fatalf("Texture(%q): %v", key, err)
		}
		if tex.Width <= 0 || tex.Height <= 0 {
			t.Fatalf("Texture(%q) size = %dx%d", key, tex.Width, tex.Height)
		}
	}
	if _, err := d.Font(RetroFont); err != nil {
		t.Fatalf("Font: %v", err)
	}
	c, err := d.Constants()
	if err != nil {
		t.Fatalf("Constants: %v", err)
	}
	if c.Player.MaxHealth != 3 {
		t.Fatalf("maxhealth = %d, want 3", c.Player.MaxHealth)
	}
}

func TestDirectoryMissingKey(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := d.LoadAll(); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if _, err := d.Texture("game:nope"); !errors.Is(err, ErrAssetMissing) {
		t.Fatalf("Texture err = %v, want ErrAssetMissing", err)
	}
	if _, err := d.Font("shared:nope"); !errors.Is(err, ErrAssetMissing) {
		t.Fatalf("Font err = %v, want ErrAssetMissing", err)
	}
	if _, err := d.Document("global:nope"); !errors.Is(err, ErrAssetMissing) {
		t.Fatalf("Document err = %v, want ErrAssetMissing", err)
	}
}

func TestDirectoryIncrementalProgress(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.yaml": {Data: []byte(`
textures:
  "game:a": {color: red, width: 4, height: 4}
  "game:b": {color: red, width: 4, height: 4}
  "game:c": {path: img/c.png, frames: 2}
documents:
  "global:constants": constants.json
`)},
		"img/c.png":      {Data: encodePNG(t, 8, 4)},
		"constants.json": {Data: []byte(`{}`)},
	}
	d, err := Open(fsys, "manifest.yaml")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if d.Progress() != 0 {
		t.Fatalf("initial progress = %v", d.Progress())
	}

	done, err := d.Update(2)
	if err != nil || done {
		t.Fatalf("Update(2) = %v, %v", done, err)
	}
	if got := d.Progress(); got != 0.5 {
		t.Fatalf("progress = %v, want 0.5", got)
	}

	done, err = d.Update(10)
	if err != nil || !done {
		t.Fatalf("Update(10) = %v, %v", done, err)
	}
	tex, err := d.Texture("game:c")
	if err != nil {
		t.Fatalf("Texture: %v", err)
	}
	if tex.Width != 4 || tex.Height != 4 || tex.Frames != 2 {
		t.Fatalf("filmstrip = %+v, want 4x4 with 2 frames", tex)
	}
}

func TestDirectoryLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "missing image",
			fsys: fstest.MapFS{"m.yaml": {Data: []byte(`textures: {"game:x": {path: gone.png}}`)}},
		},
		{
			name: "not an image",
			fsys: fstest.MapFS{
				"m.yaml":  {Data: []byte(`textures: {"game:x": {path: bad.png}}`)},
				"bad.png": {Data: []byte("nope")},
			},
		},
		{
			name: "placeholder without size",
			fsys: fstest.MapFS{"m.yaml": {Data: []byte(`textures: {"game:x": {color: red}}`)}},
		},
		{
			name: "missing document",
			fsys: fstest.MapFS{"m.yaml": {Data: []byte(`documents: {"global:constants": gone.json}`)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Open(tt.fsys, "m.yaml")
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if err := d.LoadAll(); err == nil {
				t.Fatalf("LoadAll succeeded, want error")
			}
		})
	}
}

func TestOpenRejectsBadManifest(t *testing.T) {
	fsys := fstest.MapFS{"m.yaml": {Data: []byte("textures: [1, 2")}}
	if _, err := Open(fsys, "m.yaml"); err == nil {
		t.Fatalf("Open succeeded on malformed yaml")
	}
	if _, err := Open(fsys, "missing.yaml"); err == nil {
		t.Fatalf("Open succeeded on missing manifest")
	}
}
