package terrn

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Scene parsing errors.
var (
	ErrMalformedScene = errors.New("malformed terrn scene")
)

// DefaultGravity is used when the scene carries no gravity directive.
const DefaultGravity = -9.81

// Scene is the parsed header of a legacy terrn scene file. It is built once
// per conversion run and never mutated afterwards.
type Scene struct {
	Name              string
	GeometryConfigRef string // legacy Ogre terrain .cfg filename
	WaterHeight       *float64
	AmbientColor      string // opaque passthrough token/triple
	StartPosition     [3]float64
	Gravity           float64
	LanduseConfigRef  string
	HasCaelumSky      bool
	Authors           map[string]string // role -> name, last occurrence wins
}

// HasWater reports whether the scene declared a water line.
func (s *Scene) HasWater() bool {
	return s.WaterHeight != nil
}

// slotState tracks which positional header slot the builder expects next.
// The legacy format assigns meaning by order of occurrence, so the builder
// is an explicit state machine over Content-classified lines.
type slotState int

const (
	expectName slotState = iota
	expectGeometry
	expectWaterOrColor
	expectColor
	expectStartPosition
	slotsDone
)

// missingSlot names the slot a too-short file failed to fill.
func (s slotState) missingSlot() string {
	switch s {
	case expectName:
		return "name"
	case expectGeometry:
		return "geometry config"
	case expectWaterOrColor, expectColor:
		return "ambient color"
	case expectStartPosition:
		return "start position"
	default:
		return "none"
	}
}

// sceneBuilder folds classified lines into a Scene.
type sceneBuilder struct {
	scene *Scene
	state slotState

	// Some variant files put a bare "caelum" sky placeholder right after
	// the geometry config line. It is consumed once and occupies no slot.
	placeholderPending bool
}

// ParseScene builds a Scene from raw terrn file contents.
//
// The five header slots (name, geometry config, optional water height,
// ambient color, start position) are filled in order of occurrence among
// Content-classified lines. Directives and author comments are recognized
// anywhere and never consume a slot. A file that cannot fill all slots
// yields ErrMalformedScene; no partial Scene is returned.
func ParseScene(data []byte) (*Scene, error) {
	b := sceneBuilder{
		scene: &Scene{
			Gravity: DefaultGravity,
			Authors: make(map[string]string),
		},
		state: expectName,
	}

	for _, raw := range strings.Split(string(data), "\n") {
		if err := b.feed(ClassifyLine(raw)); err != nil {
			return nil, err
		}
	}

	if b.state != slotsDone {
		return nil, fmt.Errorf("%w: missing %s slot", ErrMalformedScene, b.state.missingSlot())
	}
	return b.scene, nil
}

// feed applies one classified line to the builder.
func (b *sceneBuilder) feed(cl ClassifiedLine) error {
	switch cl.Kind {
	case LineBlank, LineEndMarker:
		return nil

	case LineAuthorComment:
		if cl.HasAuthor {
			b.scene.Authors[cl.AuthorRole] = cl.AuthorName
		}
		return nil

	case LineGravity:
		g, err := strconv.ParseFloat(cl.Value, 64)
		if err != nil {
			return fmt.Errorf("%w: bad gravity value %q", ErrMalformedScene, cl.Value)
		}
		b.scene.Gravity = g
		return nil

	case LineLanduse:
		b.scene.LanduseConfigRef = cl.Value
		return nil

	case LineCaelum:
		b.scene.HasCaelumSky = true
		return nil

	default: // LineContent
		if b.placeholderPending {
			b.placeholderPending = false
			if cl.Text == "caelum" {
				return nil
			}
		}
		return b.fillSlot(cl.Text)
	}
}

// fillSlot assigns one Content line to the current header slot and advances
// the state machine.
func (b *sceneBuilder) fillSlot(line string) error {
	switch b.state {
	case expectName:
		b.scene.Name = line
		b.state = expectGeometry

	case expectGeometry:
		b.scene.GeometryConfigRef = line
		b.state = expectWaterOrColor
		b.placeholderPending = true

	case expectWaterOrColor:
		if strings.HasPrefix(line, "w ") {
			tok := secondToken(line)
			h, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return fmt.Errorf("%w: bad water height %q", ErrMalformedScene, tok)
			}
			b.scene.WaterHeight = &h
			b.state = expectColor
			return nil
		}
		// No water line: reinterpret this line as the ambient color slot.
		b.scene.AmbientColor = line
		b.state = expectStartPosition

	case expectColor:
		b.scene.AmbientColor = line
		b.state = expectStartPosition

	case expectStartPosition:
		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			return fmt.Errorf("%w: start position needs 3 comma fields, got %d", ErrMalformedScene, len(fields))
		}
		// Legacy lines may carry up to 9 fields; the trailing 6 describe
		// orientation and are dropped from the scene header.
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
			if err != nil {
				return fmt.Errorf("%w: bad start position field %q", ErrMalformedScene, fields[i])
			}
			b.scene.StartPosition[i] = v
		}
		b.state = slotsDone

	case slotsDone:
		// Remaining content lines belong to the object-list pass.
	}
	return nil
}

// ParseSceneFile parses a terrn scene file from disk.
func ParseSceneFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading terrn file: %w", err)
	}
	return ParseScene(data)
}
