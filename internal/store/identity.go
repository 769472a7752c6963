package store

import "GardenGenie/internal/plantcare"

// PlantIdentity is the durable key for a plant record: (name, zone) for
// outdoor plants, (name, group, zone=NULL) for houseplants and succulents.
type PlantIdentity struct {
	Name  string
	Group plantcare.Group
	// Zone is nil for indoor groups regardless of the caller-supplied
	// value; indoor care is zone-independent.
	Zone *string
}

// NewIdentity applies the zone policy uniformly: houseplants and
// succulents always persist with a null zone, every other category keeps
// the caller-supplied zone verbatim.
func NewIdentity(name string, group plantcare.Group, userZone string) PlantIdentity {
	id := PlantIdentity{Name: name, Group: group}
	if !group.Indoor() && userZone != "" {
		zone := userZone
		id.Zone = &zone
	}
	return id
}
