package echoweb

import (
	"github.com/labstack/echo/v4"

	"github.com/migeprof/fehub/core/location"
	"github.com/migeprof/fehub/core/resource"
)

// locationOptions narrows each administrative level to the choices valid
// under the currently selected parents. Changing a parent empties every
// level below it.
func locationOptions(_ echo.Context, current resource.Values) (map[string][]string, error) {
	sel := location.NewSelection(
		current["Province"], current["District"], current["Sector"], current["Cell"], current["Village"],
	)
	return map[string][]string{
		"Province": sel.Options(location.LevelProvince),
		"District": sel.Options(location.LevelDistrict),
		"Sector":   sel.Options(location.LevelSector),
		"Cell":     sel.Options(location.LevelCell),
		"Village":  sel.Options(location.LevelVillage),
	}, nil
}
