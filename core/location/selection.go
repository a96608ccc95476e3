package location

// Level indexes the hierarchy, top down.
type Level int

const (
	LevelProvince Level = iota
	LevelDistrict
	LevelSector
	LevelCell
	LevelVillage
)

var levelNames = [...]string{"Province", "District", "Sector", "Cell", "Village"}

func (l Level) String() string { return levelNames[l] }

// Selection tracks a partially resolved location. Setting any level clears
// every level below it, so a stale descendant can never outlive a changed
// parent.
type Selection struct {
	Province string
	District string
	Sector   string
	Cell     string
	Village  string
}

// NewSelection rebuilds a selection from stored values, dropping any level
// whose value is not valid under its parents.
func NewSelection(province, district, sector, cell, village string) Selection {
	var s Selection
	s.Set(LevelProvince, province)
	s.Set(LevelDistrict, district)
	s.Set(LevelSector, sector)
	s.Set(LevelCell, cell)
	s.Set(LevelVillage, village)
	return s
}

// Set assigns a level and clears all descendants. Values not present in the
// level's current options are rejected, leaving the level (and everything
// below) empty.
func (s *Selection) Set(level Level, value string) {
	switch level {
	case LevelProvince:
		s.District, s.Sector, s.Cell, s.Village = "", "", "", ""
		if contains(Provinces(), value) {
			s.Province = value
		} else {
			s.Province = ""
		}
	case LevelDistrict:
		s.Sector, s.Cell, s.Village = "", "", ""
		if contains(Districts(s.Province), value) {
			s.District = value
		} else {
			s.District = ""
		}
	case LevelSector:
		s.Cell, s.Village = "", ""
		if contains(Sectors(s.Province, s.District), value) {
			s.Sector = value
		} else {
			s.Sector = ""
		}
	case LevelCell:
		s.Village = ""
		if contains(Cells(s.Province, s.District, s.Sector), value) {
			s.Cell = value
		} else {
			s.Cell = ""
		}
	case LevelVillage:
		if contains(Villages(s.Province, s.District, s.Sector, s.Cell), value) {
			s.Village = value
		} else {
			s.Village = ""
		}
	}
}

// Options returns the valid choices for a level given the current parents;
// empty until every parent above the level is chosen.
func (s Selection) Options(level Level) []string {
	switch level {
	case LevelProvince:
		return Provinces()
	case LevelDistrict:
		return Districts(s.Province)
	case LevelSector:
		return Sectors(s.Province, s.District)
	case LevelCell:
		return Cells(s.Province, s.District, s.Sector)
	case LevelVillage:
		return Villages(s.Province, s.District, s.Sector, s.Cell)
	}
	return nil
}

// Value returns the chosen value at a level.
func (s Selection) Value(level Level) string {
	switch level {
	case LevelProvince:
		return s.Province
	case LevelDistrict:
		return s.District
	case LevelSector:
		return s.Sector
	case LevelCell:
		return s.Cell
	case LevelVillage:
		return s.Village
	}
	return ""
}

// Complete reports whether all five levels resolve; a family is not valid
// for submission until they do.
func (s Selection) Complete() bool {
	return s.Province != "" && s.District != "" && s.Sector != "" && s.Cell != "" && s.Village != ""
}
