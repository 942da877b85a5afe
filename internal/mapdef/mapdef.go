// Package mapdef loads arena definitions from YAML fixtures into
// sim.Map values, so map authoring doesn't require recompiling the
// simulation core.
package mapdef

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AshFrancis/chickenz/internal/fp"
	"github.com/AshFrancis/chickenz/internal/sim"
)

// Point is a YAML-friendly fixed-point coordinate, authored in whole
// world pixels and converted to Q24.8 on load.
type Point struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}

// Rect is a YAML-friendly platform rectangle, authored in whole world
// pixels.
type Rect struct {
	X      int32 `yaml:"x"`
	Y      int32 `yaml:"y"`
	Width  int32 `yaml:"width"`
	Height int32 `yaml:"height"`
}

// Definition is the on-disk shape of a map fixture.
type Definition struct {
	Name         string `yaml:"name"`
	Width        int32  `yaml:"width"`
	Height       int32  `yaml:"height"`
	Platforms    []Rect `yaml:"platforms"`
	Spawns       []Point `yaml:"spawns"`
	WeaponSpawns []Point `yaml:"weapon_spawns"`
}

// Load reads and parses a map definition from path.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read map file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a map definition from YAML bytes.
func Parse(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("parse map yaml: %w", err)
	}
	if len(def.Spawns) == 0 {
		return Definition{}, fmt.Errorf("map %q defines no spawn points", def.Name)
	}
	return def, nil
}

// ToSimMap converts a parsed Definition into the fixed-capacity sim.Map
// the simulation core consumes.
func ToSimMap(def Definition) *sim.Map {
	platforms := make([]sim.Platform, len(def.Platforms))
	for i, r := range def.Platforms {
		platforms[i] = sim.Platform{
			X: fp.FromInt(r.X), Y: fp.FromInt(r.Y),
			Width: fp.FromInt(r.Width), Height: fp.FromInt(r.Height),
		}
	}
	spawns := make([]sim.SpawnPoint, len(def.Spawns))
	for i, p := range def.Spawns {
		spawns[i] = sim.SpawnPoint{X: fp.FromInt(p.X), Y: fp.FromInt(p.Y)}
	}
	weaponSpawns := make([]sim.SpawnPoint, len(def.WeaponSpawns))
	for i, p := range def.WeaponSpawns {
		weaponSpawns[i] = sim.SpawnPoint{X: fp.FromInt(p.X), Y: fp.FromInt(p.Y)}
	}
	return sim.NewMap(fp.FromInt(def.Width), fp.FromInt(def.Height), platforms, spawns, weaponSpawns)
}

// LoadSimMap is the common-case convenience wrapper: load + convert.
func LoadSimMap(path string) (*sim.Map, error) {
	def, err := Load(path)
	if err != nil {
		return nil, err
	}
	return ToSimMap(def), nil
}
