package overpass

import (
	"fmt"
	"sort"
	"strings"

	"github.com/timfernando/roadcolors/pkg/graph"
)

// Overpass treats area IDs as the OSM ID plus a type offset.
const (
	wayAreaOffset      = 2400000000
	relationAreaOffset = 3600000000
)

// networkFilters maps a network type to the Overpass QL tag filter for its
// way selector. The exclusion lists follow the usual street-network
// conventions: "drive" keeps only ways a car may use, "walk" drops
// motorways and cycleways, "bike" drops motorways and footways, "all"
// drops only non-traversable ways.
var networkFilters = map[string]string{
	"all": `["highway"]["area"!~"yes"]` +
		`["highway"!~"abandoned|construction|planned|platform|proposed|raceway|razed"]`,
	"drive": `["highway"]["area"!~"yes"]` +
		`["highway"!~"abandoned|bridleway|bus_guideway|construction|corridor|cycleway|elevator|escalator|footway|path|pedestrian|planned|platform|proposed|raceway|razed|steps|track"]` +
		`["motor_vehicle"!~"no"]["motorcar"!~"no"]` +
		`["service"!~"emergency_access|parking|parking_aisle|private"]`,
	"walk": `["highway"]["area"!~"yes"]` +
		`["highway"!~"abandoned|bus_guideway|construction|cycleway|motor|motorway|planned|platform|proposed|raceway|razed"]` +
		`["foot"!~"no"]["sidewalk"!~"separate"]`,
	"bike": `["highway"]["area"!~"yes"]` +
		`["highway"!~"abandoned|bus_guideway|construction|corridor|elevator|escalator|footway|motor|motorway|planned|platform|proposed|raceway|razed|steps"]` +
		`["bicycle"!~"no"]`,
}

// NetworkTypes lists the accepted --network-type values.
func NetworkTypes() []string {
	types := make([]string, 0, len(networkFilters))
	for t := range networkFilters {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ValidNetworkType reports whether the given network type is supported.
func ValidNetworkType(network string) bool {
	_, ok := networkFilters[network]
	return ok
}

// AreaID converts a Nominatim match into an Overpass area ID.
func AreaID(osmType string, osmID int64) (int64, error) {
	switch osmType {
	case "way":
		return osmID + wayAreaOffset, nil
	case "relation":
		return osmID + relationAreaOffset, nil
	}
	return 0, fmt.Errorf("osm type %q has no overpass area", osmType)
}

// areaQuery selects highway ways inside a named administrative area.
func areaQuery(areaID int64, network string) string {
	return fmt.Sprintf(`[out:json][timeout:180];
area(%d)->.searchArea;
(way%s(area.searchArea););
out body;
>;
out skel qt;`, areaID, networkFilters[network])
}

// aroundQuery selects highway ways within radius meters of a point.
func aroundQuery(lat, lon, radius float64, network string) string {
	return fmt.Sprintf(`[out:json][timeout:180];
(way%s(around:%.0f,%.6f,%.6f););
out body;
>;
out skel qt;`, networkFilters[network], radius, lat, lon)
}

// bboxQuery selects highway ways inside a bounding box.
func bboxQuery(b graph.BBox, network string) string {
	return fmt.Sprintf(`[out:json][timeout:180];
(way%s(%.6f,%.6f,%.6f,%.6f););
out body;
>;
out skel qt;`, networkFilters[network], b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}

// normalizeNetwork validates a network type, defaulting empty to "all".
func normalizeNetwork(network string) (string, error) {
	if network == "" {
		return "all", nil
	}
	network = strings.ToLower(network)
	if !ValidNetworkType(network) {
		return "", fmt.Errorf("unknown network type %q (want one of %s)",
			network, strings.Join(NetworkTypes(), ", "))
	}
	return network, nil
}
