package services

import (
	"context"
	"errors"

	"github.com/yeremiapane/foodiego/models"
	"gorm.io/gorm"
)

type MenuItemInput struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Description *string `json:"description"`
	Price       float64 `json:"price" validate:"gt=0,lte=99999999.99"`
	Image       *string `json:"image"`
	CategoryID  uint    `json:"category_id" validate:"required"`
	Available   *bool   `json:"available"`
}

// IsAvailable applies the default of true when availability is omitted.
func (in MenuItemInput) IsAvailable() bool {
	return in.Available == nil || *in.Available
}

func (in MenuItemInput) fields() map[string]interface{} {
	fields := map[string]interface{}{
		"name":        in.Name,
		"price":       in.Price,
		"category_id": in.CategoryID,
		"available":   in.IsAvailable(),
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	return fields
}

const deleteMenuItemFailed = "Failed to delete menu item. Please try again."

type MenuService struct {
	db          *gorm.DB
	revalidator Revalidator
}

func NewMenuService(db *gorm.DB, revalidator Revalidator) *MenuService {
	return &MenuService{db: db, revalidator: orNoopRevalidator(revalidator)}
}

// GetMenuItems returns every menu item with its category, newest first.
func (s *MenuService) GetMenuItems(ctx context.Context) []models.MenuItem {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error; err != nil {
		logActionError("get menu items", err)
		return []models.MenuItem{}
	}
	return items
}

// GetMenuItemsByCategory returns the available items of one category.
func (s *MenuService) GetMenuItemsByCategory(ctx context.Context, categoryID uint) []models.MenuItem {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Where("category_id = ? AND available = ?", categoryID, true).
		Order("name asc").
		Find(&items).Error; err != nil {
		logActionError("get menu items by category", err)
		return []models.MenuItem{}
	}
	return items
}

func (s *MenuService) categoryExists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MenuService) CreateMenuItem(ctx context.Context, input MenuItemInput) ActionResult {
	if _, err := requireAdmin(ctx); err != nil {
		return failed(err, "")
	}
	if err := validateInput(input); err != nil {
		return failed(ErrInvalidFields, "")
	}

	db := s.db.WithContext(ctx)
	ok, err := s.categoryExists(db, input.CategoryID)
	if err != nil {
		logActionError("create menu item", err)
		return failed(ErrSomethingWentWrong, "")
	}
	if !ok {
		return failed(ErrNotFound, "Category not found")
	}

	item := models.MenuItem{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		CategoryID:  input.CategoryID,
		Available:   input.IsAvailable(),
	}
	if err := db.Create(&item).Error; err != nil {
		logActionError("create menu item", err)
		return failed(ErrSomethingWentWrong, "")
	}

	s.revalidator.Revalidate(PathAdminMenu)
	return succeeded("Menu item created successfully")
}

func (s *MenuService) UpdateMenuItem(ctx context.Context, id uint, input MenuItemInput) ActionResult {
	if _, err := requireAdmin(ctx); err != nil {
		return failed(err, "")
	}
	if err := validateInput(input); err != nil {
		return failed(ErrInvalidFields, "")
	}

	db := s.db.WithContext(ctx)
	ok, err := s.categoryExists(db, input.CategoryID)
	if err != nil {
		logActionError("update menu item", err)
		return failed(ErrSomethingWentWrong, "")
	}
	if !ok {
		return failed(ErrNotFound, "Category not found")
	}

	res := db.Model(&models.MenuItem{}).Where("id = ?", id).Updates(input.fields())
	if res.Error != nil {
		logActionError("update menu item", res.Error)
		return failed(ErrSomethingWentWrong, "")
	}
	if res.RowsAffected == 0 {
		return failed(ErrNotFound, "Menu item not found")
	}

	s.revalidator.Revalidate(PathAdminMenu)
	return succeeded("Menu item updated successfully")
}

// DeleteMenuItem removes the order items that reference the item, then the item.
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uint) ActionResult {
	if _, err := requireAdmin(ctx); err != nil {
		return failed(err, "")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.MenuItem{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failed(ErrNotFound, "Menu item not found")
	}
	if err != nil {
		logActionError("delete menu item", err)
		return failed(ErrSomethingWentWrong, deleteMenuItemFailed)
	}

	s.revalidator.Revalidate(PathAdminMenu, PathHome)
	return succeeded("Menu item deleted successfully")
}
