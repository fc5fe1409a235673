package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wetalkinmedia/PocketWatcha2/internal/location"
)

// ListLocations returns the selectable cities grouped by region
// @Summary     List locations
// @Description List the cities of the cost-of-living table grouped by region, optionally filtered by name
// @Tags        calculator
// @Produce     json
// @Param       search query string false "Filter by city name or value"
// @Success     200 {object} map[string][]location.Group "Location groups"
// @Router      /locations [get]
func ListLocations(c *gin.Context) {
	groups := location.Groups(c.Query("search"))
	if groups == nil {
		groups = []location.Group{}
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups, "tiers": location.Tiers()})
}
