// Package puzzlefile reads and writes puzzle descriptions in YAML, TOML or
// JSON.
//
// A file lists tubes bottom to top by color label:
//
//	capacity: 4
//	colors:
//	  r: "#E53935"
//	tubes:
//	  - [r, g, g, b]
//	  - []
//
// Labels of the form #RRGGBB become packed RGB tokens, so screenshots written
// back by the recognizer round-trip. Other labels get tokens from
// palette.LabelBase upward in order of first appearance.
package puzzlefile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tubesort/pkg/config"
	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/logging"
	"github.com/arthur-debert/tubesort/pkg/palette"
	"github.com/arthur-debert/tubesort/pkg/puzzle"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// File is the on-disk shape of a puzzle
type File struct {
	Capacity int               `yaml:"capacity,omitempty" toml:"capacity,omitempty" json:"capacity,omitempty"`
	Colors   map[string]string `yaml:"colors,omitempty" toml:"colors,omitempty" json:"colors,omitempty"`
	Tubes    []Labels          `yaml:"tubes" toml:"tubes" json:"tubes"`
}

// Labels is one tube's color labels, bottom to top
type Labels []string

// MarshalYAML writes each tube on one line
func (l Labels) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, label := range l {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: label})
	}
	return node, nil
}

// Puzzle is a decoded puzzle ready for the solver
type Puzzle struct {
	State   puzzle.State
	Palette palette.Palette
	Source  string
}

// FormatFor picks the format from a file extension
func FormatFor(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// Load reads a puzzle file. defaultCapacity applies when the file does not
// set one.
func Load(path string, defaultCapacity int) (*Puzzle, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported puzzle file extension %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "puzzle file %s not found", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read puzzle file %s", path)
	}
	p, err := Decode(data, format, defaultCapacity)
	if err != nil {
		return nil, err
	}
	p.Source = path
	return p, nil
}

// Decode parses puzzle data in the given format
func Decode(data []byte, format string, defaultCapacity int) (*Puzzle, error) {
	var f File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown puzzle format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrParse, "malformed %s puzzle", format)
	}
	return f.Puzzle(defaultCapacity)
}

// Puzzle converts the file contents into a validated state and palette
func (f *File) Puzzle(defaultCapacity int) (*Puzzle, error) {
	if len(f.Tubes) == 0 {
		return nil, errors.New(errors.ErrNoTubes, "puzzle has no tubes")
	}
	capacity := f.Capacity
	if capacity == 0 {
		capacity = defaultCapacity
	}

	pal := make(palette.Palette)
	tokens := make(map[string]puzzle.Color)
	next := palette.LabelBase

	tubes := make([]puzzle.Tube, len(f.Tubes))
	for i, labels := range f.Tubes {
		tube := make(puzzle.Tube, 0, len(labels))
		for j, label := range labels {
			label = strings.TrimSpace(label)
			if label == "" {
				return nil, errors.Newf(errors.ErrParse, "tube %d unit %d has an empty color label", i, j).
					WithDetail("tube", i)
			}
			c, ok := tokens[label]
			if !ok {
				if strings.HasPrefix(label, "#") {
					rgb, err := config.ParseHexColor(label)
					if err != nil {
						return nil, errors.Wrapf(err, errors.ErrParse, "tube %d unit %d", i, j)
					}
					c = puzzle.Color(rgb)
					pal[c] = palette.Swatch{Label: label, Hex: palette.HexOf(c)}
				} else {
					c = next
					next++
					pal[c] = palette.Swatch{Label: label, Hex: f.Colors[label]}
				}
				tokens[label] = c
			}
			tube = append(tube, c)
		}
		tubes[i] = tube
	}

	state, err := puzzle.NewState(capacity, tubes...)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("puzzlefile")
	for c, n := range state.Units() {
		if n%capacity != 0 {
			logger.Warn().
				Str("color", pal.Label(c)).
				Int("units", n).
				Int("capacity", capacity).
				Msg("Color count is not a multiple of the capacity, the puzzle cannot be solved")
		}
	}

	return &Puzzle{State: state, Palette: pal}, nil
}

// FromState builds the file form of a state, labelling colors from pal
func FromState(state puzzle.State, pal palette.Palette) *File {
	f := &File{
		Capacity: state.Capacity,
		Tubes:    make([]Labels, len(state.Tubes)),
	}
	order := state.Colors()
	for i, tube := range state.Tubes {
		labels := make(Labels, len(tube))
		for j, c := range tube {
			label := pal.Label(c)
			labels[j] = label
			if !strings.HasPrefix(label, "#") {
				if f.Colors == nil {
					f.Colors = make(map[string]string)
				}
				f.Colors[label] = pal.Hex(c, order)
			}
		}
		f.Tubes[i] = labels
	}
	return f
}

// Encode writes the file in the given format
func (f *File) Encode(format string) ([]byte, error) {
	var data []byte
	var err error
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(f); err == nil {
			err = enc.Close()
		}
		data = buf.Bytes()
	case FormatTOML:
		data, err = toml.Marshal(f)
	case FormatJSON:
		data, err = json.MarshalIndent(f, "", "  ")
		data = append(data, '\n')
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown puzzle format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "cannot encode %s puzzle", format)
	}
	return data, nil
}
