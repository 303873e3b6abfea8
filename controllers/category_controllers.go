package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/services"
	"github.com/yeremiapane/foodiego/utils"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

func (cc *CategoryController) GetCategories(c *gin.Context) {
	categories := cc.categories.GetCategories(c.Request.Context())
	utils.RespondJSON(c, http.StatusOK, "All categories", categories)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var input services.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	respondResult(c, cc.categories.CreateCategory(c.Request.Context(), input), http.StatusCreated)
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "cat_id")
	if !ok {
		return
	}
	var input services.CategoryInput
	if !bindJSON(c, &input) {
		return
	}
	respondResult(c, cc.categories.UpdateCategory(c.Request.Context(), id, input), http.StatusOK)
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "cat_id")
	if !ok {
		return
	}
	respondResult(c, cc.categories.DeleteCategory(c.Request.Context(), id), http.StatusOK)
}
