package controllers

import (
	"backoffice/models"
	"backoffice/services"
	"backoffice/utils"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService *services.CategoryService
}

func NewCategoryController(categoryService *services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// @Summary Create category
// @Tags Categories
// @Router /categories [post]
func (cc *CategoryController) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	category, err := cc.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Category created successfully", category)
}

// @Summary List categories
// @Tags Categories
// @Router /categories [get]
func (cc *CategoryController) List(c *gin.Context) {
	var query models.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query parameters")
		return
	}

	page, limit := utils.NormalizePagination(query.Page, query.Limit)
	query.Page, query.Limit = page, limit

	categories, total, err := cc.categoryService.List(c.Request.Context(), query)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithPagination(c, "Categories retrieved", categories,
		utils.CreatePagination(page, limit, total))
}

// @Summary Get category
// @Tags Categories
// @Router /categories/{id} [get]
func (cc *CategoryController) GetByID(c *gin.Context) {
	category, err := cc.categoryService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Category retrieved", category)
}

// @Summary Update category
// @Tags Categories
// @Router /categories/{id} [put]
func (cc *CategoryController) Update(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	category, err := cc.categoryService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Category updated successfully", category)
}

// @Summary Delete category
// @Tags Categories
// @Router /categories/{id} [delete]
func (cc *CategoryController) Delete(c *gin.Context) {
	if err := cc.categoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.ServiceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Category deleted successfully", nil)
}
