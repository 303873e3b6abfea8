package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodiego/services"
	"github.com/yeremiapane/foodiego/utils"
)

type MenuController struct {
	menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{menu: menu}
}

// GetMenuItems lists the whole menu, newest first.
func (mc *MenuController) GetMenuItems(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "All menu items", mc.menu.GetMenuItems(c.Request.Context()))
}

// GetMenuItemsByCategory lists the available items of one category.
func (mc *MenuController) GetMenuItemsByCategory(c *gin.Context) {
	id, ok := paramID(c, "cat_id")
	if !ok {
		return
	}
	items := mc.menu.GetMenuItemsByCategory(c.Request.Context(), id)
	utils.RespondJSON(c, http.StatusOK, "Menu items by category", items)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var input services.MenuItemInput
	if !bindJSON(c, &input) {
		return
	}
	respondResult(c, mc.menu.CreateMenuItem(c.Request.Context(), input), http.StatusCreated)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	var input services.MenuItemInput
	if !bindJSON(c, &input) {
		return
	}
	respondResult(c, mc.menu.UpdateMenuItem(c.Request.Context(), id, input), http.StatusOK)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	respondResult(c, mc.menu.DeleteMenuItem(c.Request.Context(), id), http.StatusOK)
}
