// Package location resolves Rwanda's administrative hierarchy:
// province → district → sector → cell → village. Lookups at each level are
// scoped by the full chain of parents; a level has no options until every
// parent above it is chosen.
package location

import (
	_ "embed"
	"encoding/json"
	"log"
	"sort"
)

// data.json is a trimmed snapshot of the national gazetteer; enough depth to
// resolve every province and a representative spread below.
//
//go:embed data.json
var rawData []byte

// {province: {district: {sector: {cell: [villages]}}}}
type dataset map[string]map[string]map[string]map[string][]string

var divisions dataset

func init() {
	if err := json.Unmarshal(rawData, &divisions); err != nil {
		log.Fatalf("location: parsing embedded dataset: %v", err)
	}
}

func sortedKeys(m map[string]map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Provinces lists all provinces.
func Provinces() []string {
	provinces := make([]string, 0, len(divisions))
	for p := range divisions {
		provinces = append(provinces, p)
	}
	sort.Strings(provinces)
	return provinces
}

// Districts lists the districts of a province; nil when the province is
// unknown or not chosen yet.
func Districts(province string) []string {
	districts, ok := divisions[province]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(districts))
	for d := range districts {
		keys = append(keys, d)
	}
	sort.Strings(keys)
	return keys
}

// Sectors lists the sectors of a district scoped by its province.
func Sectors(province, district string) []string {
	districts, ok := divisions[province]
	if !ok {
		return nil
	}
	sectors, ok := districts[district]
	if !ok {
		return nil
	}
	return sortedKeys(sectors)
}

// Cells lists the cells of a sector.
func Cells(province, district, sector string) []string {
	sectors := Sectors(province, district)
	if sectors == nil {
		return nil
	}
	cells, ok := divisions[province][district][sector]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(cells))
	for c := range cells {
		keys = append(keys, c)
	}
	sort.Strings(keys)
	return keys
}

// Villages lists the villages of a cell.
func Villages(province, district, sector, cell string) []string {
	if Cells(province, district, sector) == nil {
		return nil
	}
	villages, ok := divisions[province][district][sector][cell]
	if !ok {
		return nil
	}
	out := make([]string, len(villages))
	copy(out, villages)
	sort.Strings(out)
	return out
}

func contains(opts []string, val string) bool {
	for _, o := range opts {
		if o == val {
			return true
		}
	}
	return false
}
