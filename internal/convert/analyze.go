package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/terrn2conv/internal/config"
	"github.com/Faultbox/terrn2conv/pkg/encoding"
	"github.com/Faultbox/terrn2conv/pkg/material"
	"github.com/Faultbox/terrn2conv/pkg/terrn"
)

// Analysis is a dry-run view of a conversion: everything the pipeline
// would resolve, without writing any output files.
type Analysis struct {
	Scene        *terrn.Scene
	Objects      []terrn.ObjectLine
	MaterialName string
	ScriptPath   string
	ScriptFound  bool
	Dialect      material.Dialect
	Layers       *material.TextureLayerSet
}

// Analyze parses the scene and resolves its material without emitting
// anything. Used by the inspect command.
func Analyze(inputPath string, cfg *config.Config) (*Analysis, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	text := encoding.DecodeText(data)

	scene, err := terrn.ParseScene([]byte(text))
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		Scene:   scene,
		Objects: terrn.FilterObjects([]byte(text)),
		Layers:  &material.TextureLayerSet{},
	}

	a.ScriptPath = cfg.Material.ScriptPath
	if a.ScriptPath == "" {
		a.ScriptPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".material"
	}
	a.MaterialName = cfg.Material.Name
	if a.MaterialName == "" {
		a.MaterialName = scene.Name
	}

	script, err := os.ReadFile(a.ScriptPath)
	if err != nil {
		return a, nil
	}
	a.ScriptFound = true

	decoded := encoding.DecodeText(script)
	block, err := material.FindBlock(decoded, a.MaterialName)
	if err != nil {
		if errors.Is(err, material.ErrMaterialNotFound) {
			return a, nil
		}
		return nil, err
	}
	a.Dialect = material.DetectDialect(a.MaterialName, block)

	set, err := material.Resolve(decoded, a.MaterialName)
	if err != nil {
		return nil, err
	}
	a.Layers = set

	return a, nil
}
