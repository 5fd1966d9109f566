package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tally/internal/core"
)

// CategoryService manages categories and their subcategories.
type CategoryService struct {
	store Store
	hooks Hooks
}

func NewCategoryService(store Store, hooks Hooks) *CategoryService {
	return &CategoryService{store: store, hooks: hooks}
}

func (s *CategoryService) List(ctx context.Context, userID int64) ([]core.Category, error) {
	cats, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *CategoryService) Get(ctx context.Context, userID, id int64) (core.Category, error) {
	c, err := s.store.GetCategory(ctx, userID, id)
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, userID int64, name, description string) (core.Category, error) {
	c := core.Category{
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	if err := s.checkCategoryName(ctx, userID, c.Name, 0); err != nil {
		return core.Category{}, err
	}

	created, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	slog.InfoContext(ctx, "Category created", "component", "category", "user_id", userID, "category_id", created.ID)
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id int64, name, description string) (core.Category, error) {
	c, err := s.store.GetCategory(ctx, userID, id)
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	c.Name = strings.TrimSpace(name)
	c.Description = strings.TrimSpace(description)
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	if err := s.checkCategoryName(ctx, userID, c.Name, id); err != nil {
		return core.Category{}, err
	}

	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	// Names appear in cached breakdowns.
	if s.hooks.Cache != nil {
		s.hooks.Cache.Invalidate(userID)
	}
	return c, nil
}

// Delete removes an unreferenced category with its subcategories.
func (s *CategoryService) Delete(ctx context.Context, userID, id int64) error {
	return s.store.WithTx(ctx, func(tx Store) error {
		c, err := tx.GetCategory(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("get category %d: %w", id, err)
		}
		n, err := tx.CountCategoryExpenses(ctx, userID, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("category %q has %d expenses: %w", c.Name, n, core.ErrInUse)
		}
		for _, sub := range c.Subcategories {
			used, err := tx.CountSubcategoryExpenses(ctx, sub.ID)
			if err != nil {
				return err
			}
			if used > 0 {
				return fmt.Errorf("subcategory %q has %d expenses: %w", sub.Name, used, core.ErrInUse)
			}
		}
		if err := tx.DeleteCategory(ctx, userID, id); err != nil {
			return fmt.Errorf("delete category %d: %w", id, err)
		}
		slog.InfoContext(ctx, "Category deleted", "component", "category", "user_id", userID, "category_id", id)
		return nil
	})
}

// Subcategories lists a category's subcategories by name. A foreign or
// unknown category is ErrNotFound.
func (s *CategoryService) Subcategories(ctx context.Context, userID, categoryID int64) ([]core.Subcategory, error) {
	if _, err := s.store.GetCategory(ctx, userID, categoryID); err != nil {
		return nil, fmt.Errorf("get category %d: %w", categoryID, err)
	}
	subs, err := s.store.ListSubcategories(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return subs, nil
}

func (s *CategoryService) GetSubcategory(ctx context.Context, userID, id int64) (core.Subcategory, error) {
	sub, err := s.store.GetSubcategory(ctx, userID, id)
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("get subcategory %d: %w", id, err)
	}
	return sub, nil
}

func (s *CategoryService) CreateSubcategory(ctx context.Context, userID, categoryID int64, name string) (core.Subcategory, error) {
	if _, err := s.store.GetCategory(ctx, userID, categoryID); err != nil {
		return core.Subcategory{}, fmt.Errorf("get category %d: %w", categoryID, err)
	}
	sub := core.Subcategory{CategoryID: categoryID, Name: strings.TrimSpace(name)}
	if err := sub.Validate(); err != nil {
		return core.Subcategory{}, err
	}
	if err := s.checkSubcategoryName(ctx, categoryID, sub.Name, 0); err != nil {
		return core.Subcategory{}, err
	}

	created, err := s.store.CreateSubcategory(ctx, sub)
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("create subcategory: %w", err)
	}
	return created, nil
}

func (s *CategoryService) UpdateSubcategory(ctx context.Context, userID, id int64, name string) (core.Subcategory, error) {
	sub, err := s.store.GetSubcategory(ctx, userID, id)
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("get subcategory %d: %w", id, err)
	}
	sub.Name = strings.TrimSpace(name)
	if err := sub.Validate(); err != nil {
		return core.Subcategory{}, err
	}
	if err := s.checkSubcategoryName(ctx, sub.CategoryID, sub.Name, id); err != nil {
		return core.Subcategory{}, err
	}

	if err := s.store.UpdateSubcategory(ctx, sub); err != nil {
		return core.Subcategory{}, fmt.Errorf("update subcategory: %w", err)
	}
	return sub, nil
}

// DeleteSubcategory removes an unreferenced subcategory.
func (s *CategoryService) DeleteSubcategory(ctx context.Context, userID, id int64) (core.Subcategory, error) {
	var sub core.Subcategory
	err := s.store.WithTx(ctx, func(tx Store) error {
		var err error
		sub, err = tx.GetSubcategory(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("get subcategory %d: %w", id, err)
		}
		n, err := tx.CountSubcategoryExpenses(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("subcategory %q has %d expenses: %w", sub.Name, n, core.ErrInUse)
		}
		return tx.DeleteSubcategory(ctx, id)
	})
	if err != nil {
		return core.Subcategory{}, err
	}
	return sub, nil
}

func (s *CategoryService) checkCategoryName(ctx context.Context, userID int64, name string, selfID int64) error {
	existing, err := s.store.FindCategoryByName(ctx, userID, name)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find category %q: %w", name, err)
	case existing.ID != selfID:
		return core.NewValidationError("name", "a category with this name already exists")
	}
	return nil
}

func (s *CategoryService) checkSubcategoryName(ctx context.Context, categoryID int64, name string, selfID int64) error {
	existing, err := s.store.FindSubcategoryByName(ctx, categoryID, name)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find subcategory %q: %w", name, err)
	case existing.ID != selfID:
		return core.NewValidationError("name", "a subcategory with this name already exists in this category")
	}
	return nil
}
