package services

import (
	"context"
	"errors"

	"github.com/yeremiapane/foodiego/models"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// fields returns the columns to write; nil optionals are left untouched.
func (in CategoryInput) fields() map[string]interface{} {
	fields := map[string]interface{}{"name": in.Name}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	return fields
}

const deleteCategoryFailed = "Failed to delete category. Please try again."

type CategoryService struct {
	db          *gorm.DB
	revalidator Revalidator
}

func NewCategoryService(db *gorm.DB, revalidator Revalidator) *CategoryService {
	return &CategoryService{db: db, revalidator: orNoopRevalidator(revalidator)}
}

// GetCategories lists categories by name with their menu item counts.
// Read failures are logged and yield an empty list.
func (s *CategoryService) GetCategories(ctx context.Context) []models.CategoryWithCount {
	db := s.db.WithContext(ctx)

	var categories []models.Category
	if err := db.Order("name asc").Find(&categories).Error; err != nil {
		logActionError("get categories", err)
		return []models.CategoryWithCount{}
	}

	var counts []struct {
		CategoryID uint
		Total      int64
	}
	if err := db.Model(&models.MenuItem{}).
		Select("category_id, COUNT(*) AS total").
		Group("category_id").
		Scan(&counts).Error; err != nil {
		logActionError("get categories", err)
		return []models.CategoryWithCount{}
	}
	byCategory := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byCategory[c.CategoryID] = c.Total
	}

	result := make([]models.CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		result = append(result, models.CategoryWithCount{
			Category:      category,
			MenuItemCount: byCategory[category.ID],
		})
	}
	return result
}

func (s *CategoryService) CreateCategory(ctx context.Context, input CategoryInput) ActionResult {
	if _, err := requireAdmin(ctx); err != nil {
		return failed(err, "")
	}
	if err := validateInput(input); err != nil {
		return failed(ErrInvalidFields, "")
	}

	category := models.Category{
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		logActionError("create category", err)
		return failed(ErrSomethingWentWrong, "")
	}

	s.revalidator.Revalidate(PathAdminCategories)
	return succeeded("Category created successfully")
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, input CategoryInput) ActionResult {
	if _, err := requireAdmin(ctx); err != nil {
		return failed(err, "")
	}
	if err := validateInput(input); err != nil {
		return failed(ErrInvalidFields, "")
	}

	res := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Updates(input.fields())
	if res.Error != nil {
		logActionError("update category", res.Error)
		return failed(ErrSomethingWentWrong, "")
	}
	if res.RowsAffected == 0 {
		return failed(ErrNotFound, "Category not found")
	}

	s.revalidator.Revalidate(PathAdminCategories)
	return succeeded("Category updated successfully")
}

// DeleteCategory removes the order items that reference the category's menu
// items, then the menu items, then the category itself.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) ActionResult {
	if _, err := requireAdmin(ctx); err != nil {
		return failed(err, "")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemIDs []uint
		if err := tx.Model(&models.MenuItem{}).Where("category_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("menu_item_id IN ?", itemIDs).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", itemIDs).Delete(&models.MenuItem{}).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failed(ErrNotFound, "Category not found")
	}
	if err != nil {
		logActionError("delete category", err)
		return failed(ErrSomethingWentWrong, deleteCategoryFailed)
	}

	s.revalidator.Revalidate(PathAdminCategories, PathAdminMenu, PathHome)
	return succeeded("Category deleted successfully")
}
