package controllers

import (
	"backoffice/models"
	"backoffice/services"
	"backoffice/utils"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	customerService *services.CustomerService
}

func NewCustomerController(customerService *services.CustomerService) *CustomerController {
	return &CustomerController{customerService: customerService}
}

// @Summary Create customer
// @Tags Customers
// @Router /customers [post]
func (cc *CustomerController) Create(c *gin.Context) {
	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	customer, err := cc.customerService.Create(c.Request.Context(), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Customer created successfully", customer)
}

// @Summary List customers
// @Tags Customers
// @Router /customers [get]
func (cc *CustomerController) List(c *gin.Context) {
	var query models.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return
	}

	page, limit := utils.NormalizePagination(query.Page, query.Limit)
	query.Page, query.Limit = page, limit

	customers, total, err := cc.customerService.List(c.Request.Context(), query)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithPagination(c, "Customers retrieved", customers,
		utils.CreatePagination(page, limit, total))
}

// @Summary Get customer
// @Tags Customers
// @Router /customers/{id} [get]
func (cc *CustomerController) GetByID(c *gin.Context) {
	customer, err := cc.customerService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Customer retrieved", customer)
}

// @Summary Update customer
// @Tags Customers
// @Router /customers/{id} [put]
func (cc *CustomerController) Update(c *gin.Context) {
	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	customer, err := cc.customerService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Customer updated successfully", customer)
}

// @Summary Delete customer
// @Tags Customers
// @Router /customers/{id} [delete]
func (cc *CustomerController) Delete(c *gin.Context) {
	if err := cc.customerService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Customer deleted successfully", nil)
}
