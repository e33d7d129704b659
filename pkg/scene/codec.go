package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/anchorbox/pkg/errors"
	"github.com/matzehuels/anchorbox/pkg/layout"
)

// Supported scene file formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Formats lists the supported scene formats.
var Formats = []string{FormatTOML, FormatJSON}

// FormatFromPath infers the scene format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer scene format from %q (use .toml or .json)", path)
	}
}

// Decode reads a scene in the given format from r.
//
// Decode checks the document structure only. Value strings are parsed by
// [Scene.Container]. Decode does not close r.
func Decode(r io.Reader, format string) (*Scene, error) {
	if err := errors.ValidateFormat(format, Formats...); err != nil {
		return nil, err
	}
	var s Scene
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
		}
	}
	return &s, nil
}

// DecodeBytes is [Decode] over an in-memory document.
func DecodeBytes(data []byte, format string) (*Scene, error) {
	return Decode(bytes.NewReader(data), format)
}

// ReadFile opens path, infers its format from the extension and decodes it.
func ReadFile(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Encode writes s to w in the given format.
func Encode(w io.Writer, s *Scene, format string) error {
	if err := errors.ValidateFormat(format, Formats...); err != nil {
		return err
	}
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(s); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	}
	return nil
}

// WriteFile encodes s to path in the format implied by its extension.
func WriteFile(path string, s *Scene) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Encode(f, s, format)
}

// FromContainer converts a layout container back to its file form. Box.Data
// is kept only when it holds a [layout.Size].
func FromContainer(name string, c layout.Container) *Scene {
	s := &Scene{
		Name:   name,
		Width:  FormatConstraint(c.Width),
		Height: FormatConstraint(c.Height),
		Boxes:  make([]BoxDecl, len(c.Boxes)),
	}
	for i, b := range c.Boxes {
		d := BoxDecl{
			ID:     b.ID,
			Width:  FormatDimension(b.Width),
			Height: FormatDimension(b.Height),
		}
		if b.Width.Min > 0 {
			d.MinWidth = formatPercent(b.Width.Min)
		}
		if b.Width.Max > 0 {
			d.MaxWidth = formatPercent(b.Width.Max)
		}
		if b.Height.Min > 0 {
			d.MinHeight = formatPercent(b.Height.Min)
		}
		if b.Height.Max > 0 {
			d.MaxHeight = formatPercent(b.Height.Max)
		}
		d.Margin = edgesOf(func(e layout.Direction) string { return FormatMargin(b.Margin[e]) })
		d.Anchor = edgesOf(func(e layout.Direction) string { return b.Anchor[e] })
		if b.Visibility == layout.Collapsed {
			d.Visibility = "collapsed"
		}
		if sz, ok := b.Data.(layout.Size); ok {
			d.Content = &Content{Width: sz.Width, Height: sz.Height}
		}
		s.Boxes[i] = d
	}
	return s
}

// edgesOf returns nil when every edge is empty.
func edgesOf(f func(layout.Direction) string) *Edges {
	e := &Edges{Left: f(layout.Left), Top: f(layout.Top), Right: f(layout.Right), Bottom: f(layout.Bottom)}
	if *e == (Edges{}) {
		return nil
	}
	return e
}
