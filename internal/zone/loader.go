package zone

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlZoneFile is the top-level YAML structure for zone files.
type yamlZoneFile struct {
	Zone yamlZone `yaml:"zone"`
}

// yamlZone is the YAML representation of a zone.
type yamlZone struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	StartRoom   string     `yaml:"start_room"`
	Rooms       []yamlRoom `yaml:"rooms"`
}

// yamlRoom is the YAML representation of a room.
type yamlRoom struct {
	ID          string            `yaml:"id"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Exits       []yamlExit        `yaml:"exits"`
	Properties  map[string]string `yaml:"properties,omitempty"`
}

// yamlExit is the YAML representation of an exit.
type yamlExit struct {
	Direction string `yaml:"direction"`
	Target    string `yaml:"target"`
	Hidden    bool   `yaml:"hidden,omitempty"`
}

// Marshal encodes z as a zone file, rooms in z.Order followed by any rooms
// missing from it in ID order.
//
// Postcondition: LoadZoneFromBytes(Marshal(z)) yields a zone equal to z.
func Marshal(z *Zone) ([]byte, error) {
	out := yamlZoneFile{Zone: yamlZone{
		ID:          z.ID,
		Name:        z.Name,
		Description: z.Description,
		StartRoom:   z.StartRoom,
	}}
	for _, id := range roomOrder(z) {
		r := z.Rooms[id]
		yr := yamlRoom{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Exits:       make([]yamlExit, 0, len(r.Exits)),
			Properties:  r.Properties,
		}
		for _, e := range r.Exits {
			yr.Exits = append(yr.Exits, yamlExit{Direction: string(e.Direction), Target: e.TargetRoom, Hidden: e.Hidden})
		}
		out.Zone.Rooms = append(out.Zone.Rooms, yr)
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding zone %q: %w", z.ID, err)
	}
	return data, nil
}

// WriteFile writes z as a zone file at path.
func WriteFile(path string, z *Zone) error {
	data, err := Marshal(z)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing zone file %s: %w", path, err)
	}
	return nil
}

// LoadZoneFromFile reads and validates a single zone YAML file.
//
// Precondition: path must point to a valid YAML zone file.
// Postcondition: Returns a validated Zone or a non-nil error.
func LoadZoneFromFile(path string) (*Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading zone file %s: %w", path, err)
	}
	return LoadZoneFromBytes(data)
}

// LoadZoneFromBytes parses and validates a zone from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the zone schema.
// Postcondition: Returns a validated Zone or a non-nil error.
func LoadZoneFromBytes(data []byte) (*Zone, error) {
	var file yamlZoneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing zone YAML: %w", err)
	}

	zone := convertYAMLZone(file.Zone)
	if err := zone.Validate(); err != nil {
		return nil, fmt.Errorf("validating zone: %w", err)
	}
	return zone, nil
}

// LoadZonesFromDir loads all YAML files in a directory as zones.
//
// Precondition: dir must be a valid directory path.
// Postcondition: Returns all validated zones or the first error encountered.
func LoadZonesFromDir(dir string) ([]*Zone, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading zone directory %s: %w", dir, err)
	}

	var zones []*Zone
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		zone, err := LoadZoneFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading zone from %s: %w", name, err)
		}
		zones = append(zones, zone)
	}

	if len(zones) == 0 {
		return nil, fmt.Errorf("no zone files found in %s", dir)
	}
	return zones, nil
}

func convertYAMLZone(yz yamlZone) *Zone {
	zone := &Zone{
		ID:          yz.ID,
		Name:        yz.Name,
		Description: yz.Description,
		StartRoom:   yz.StartRoom,
		Rooms:       make(map[string]*Room, len(yz.Rooms)),
		Order:       make([]string, 0, len(yz.Rooms)),
	}

	for _, yr := range yz.Rooms {
		room := &Room{
			ID:          yr.ID,
			ZoneID:      yz.ID,
			Title:       yr.Title,
			Description: strings.TrimSpace(yr.Description),
			Properties:  yr.Properties,
		}
		if room.Properties == nil {
			room.Properties = make(map[string]string)
		}
		for _, ye := range yr.Exits {
			room.Exits = append(room.Exits, Exit{
				Direction:  Direction(ye.Direction),
				TargetRoom: ye.Target,
				Hidden:     ye.Hidden,
			})
		}
		zone.Rooms[room.ID] = room
		zone.Order = append(zone.Order, room.ID)
	}
	return zone
}

func roomOrder(z *Zone) []string {
	order := make([]string, 0, len(z.Rooms))
	listed := make(map[string]bool, len(z.Order))
	for _, id := range z.Order {
		if _, ok := z.Rooms[id]; ok && !listed[id] {
			order = append(order, id)
			listed[id] = true
		}
	}
	var rest []string
	for id := range z.Rooms {
		if !listed[id] {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	return append(order, rest...)
}
