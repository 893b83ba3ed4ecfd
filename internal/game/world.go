package game

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/world.yaml
var worldYAML []byte

// WorldDef is the static world definition: the location graph and the quest
// table. It is parsed once and treated as read-only; sessions clone from it.
type WorldDef struct {
	Start     string               `yaml:"start"`
	Locations map[string]*Location `yaml:"locations"`
	Quests    []*Quest             `yaml:"quests"`
}

var (
	worldOnce sync.Once
	world     *WorldDef
)

func defaultWorld() *WorldDef {
	worldOnce.Do(func() {
		def, err := ParseWorld(worldYAML)
		if err != nil {
			// The embedded world ships with the binary; failing to parse
			// it is a build defect, not a runtime condition.
			panic(fmt.Sprintf("embedded world definition invalid: %v", err))
		}
		world = def
	})
	return world
}

// ParseWorld decodes a world definition document.
func ParseWorld(data []byte) (*WorldDef, error) {
	var def WorldDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse world definition: %w", err)
	}
	if def.Start == "" {
		return nil, fmt.Errorf("world definition missing start location")
	}
	if _, ok := def.Locations[def.Start]; !ok {
		return nil, fmt.Errorf("start location %q not defined", def.Start)
	}
	for key, loc := range def.Locations {
		for _, conn := range loc.Connections {
			if _, ok := def.Locations[conn]; !ok {
				return nil, fmt.Errorf("location %q connects to undefined %q", key, conn)
			}
		}
	}
	return &def, nil
}
