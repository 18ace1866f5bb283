package controllers

import (
	"backoffice/models"
	"backoffice/services"
	"backoffice/utils"

	"github.com/gin-gonic/gin"
)

type LocationController struct {
	locationService *services.LocationService
}

func NewLocationController(locationService *services.LocationService) *LocationController {
	return &LocationController{locationService: locationService}
}

// @Summary Create store location
// @Tags Locations
// @Router /locations [post]
func (lc *LocationController) Create(c *gin.Context) {
	var req models.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	location, err := lc.locationService.Create(c.Request.Context(), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Location created successfully", location)
}

// @Summary List store locations
// @Tags Locations
// @Router /locations [get]
func (lc *LocationController) List(c *gin.Context) {
	var query models.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return
	}

	page, limit := utils.NormalizePagination(query.Page, query.Limit)
	query.Page, query.Limit = page, limit

	locations, total, err := lc.locationService.List(c.Request.Context(), query)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithPagination(c, "Locations retrieved", locations,
		utils.CreatePagination(page, limit, total))
}

// @Summary Get store location
// @Tags Locations
// @Router /locations/{id} [get]
func (lc *LocationController) GetByID(c *gin.Context) {
	location, err := lc.locationService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Location retrieved", location)
}

// @Summary Update store location
// @Tags Locations
// @Router /locations/{id} [put]
func (lc *LocationController) Update(c *gin.Context) {
	var req models.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	location, err := lc.locationService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Location updated successfully", location)
}

// @Summary Delete store location
// @Tags Locations
// @Router /locations/{id} [delete]
func (lc *LocationController) Delete(c *gin.Context) {
	if err := lc.locationService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Location deleted successfully", nil)
}
