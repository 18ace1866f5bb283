package controllers

import (
	"backoffice/models"
	"backoffice/services"
	"backoffice/utils"

	"github.com/gin-gonic/gin"
)

type SupplierController struct {
	supplierService *services.SupplierService
}

func NewSupplierController(supplierService *services.SupplierService) *SupplierController {
	return &SupplierController{supplierService: supplierService}
}

// @Summary Create supplier
// @Tags Suppliers
// @Router /suppliers [post]
func (sc *SupplierController) Create(c *gin.Context) {
	var req models.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	supplier, err := sc.supplierService.Create(c.Request.Context(), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Supplier created successfully", supplier)
}

// @Summary List suppliers
// @Tags Suppliers
// @Router /suppliers [get]
func (sc *SupplierController) List(c *gin.Context) {
	var query models.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return
	}

	page, limit := utils.NormalizePagination(query.Page, query.Limit)
	query.Page, query.Limit = page, limit

	suppliers, total, err := sc.supplierService.List(c.Request.Context(), query)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithPagination(c, "Suppliers retrieved", suppliers,
		utils.CreatePagination(page, limit, total))
}

// @Summary Get supplier
// @Tags Suppliers
// @Router /suppliers/{id} [get]
func (sc *SupplierController) GetByID(c *gin.Context) {
	supplier, err := sc.supplierService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Supplier retrieved", supplier)
}

// @Summary Update supplier
// @Tags Suppliers
// @Router /suppliers/{id} [put]
func (sc *SupplierController) Update(c *gin.Context) {
	var req models.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	supplier, err := sc.supplierService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Supplier updated successfully", supplier)
}

// @Summary Delete supplier
// @Tags Suppliers
// @Router /suppliers/{id} [delete]
func (sc *SupplierController) Delete(c *gin.Context) {
	if err := sc.supplierService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Supplier deleted successfully", nil)
}
