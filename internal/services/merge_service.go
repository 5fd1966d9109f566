package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"tally/internal/amqp"
	"tally/internal/core"
)

// MergeResult summarizes a committed merge.
type MergeResult struct {
	SourceName    string
	TargetName    string
	ExpensesMoved int64
	// Renamed holds the new names of subcategories moved under the target.
	Renamed []string
}

// MergeService consolidates categories and subcategories.
type MergeService struct {
	store Store
	hooks Hooks
}

func NewMergeService(store Store, hooks Hooks) *MergeService {
	return &MergeService{store: store, hooks: hooks}
}

// MergeCategories moves every expense and subcategory of sourceID into
// targetID and deletes the source. Moved subcategories are renamed
// "<name> (from <source>)", with a numeric suffix on collision.
func (s *MergeService) MergeCategories(ctx context.Context, userID, sourceID, targetID int64) (MergeResult, error) {
	if sourceID == targetID {
		return MergeResult{}, core.ErrSameSource
	}

	var res MergeResult
	err := s.store.WithTx(ctx, func(tx Store) error {
		source, err := tx.GetCategory(ctx, userID, sourceID)
		if err != nil {
			return fmt.Errorf("get source category %d: %w", sourceID, err)
		}
		target, err := tx.GetCategory(ctx, userID, targetID)
		if err != nil {
			return fmt.Errorf("get target category %d: %w", targetID, err)
		}
		res.SourceName, res.TargetName = source.Name, target.Name

		res.ExpensesMoved, err = tx.ReassignCategory(ctx, userID, sourceID, targetID)
		if err != nil {
			return err
		}

		for _, sub := range source.Subcategories {
			name, err := uniqueSubcategoryName(ctx, tx, targetID, fmt.Sprintf("%s (from %s)", sub.Name, source.Name))
			if err != nil {
				return err
			}
			sub.Name = name
			sub.CategoryID = targetID
			if err := tx.UpdateSubcategory(ctx, sub); err != nil {
				return fmt.Errorf("move subcategory %d: %w", sub.ID, err)
			}
			res.Renamed = append(res.Renamed, name)
		}

		if err := tx.DeleteCategory(ctx, userID, sourceID); err != nil {
			return fmt.Errorf("delete source category: %w", err)
		}
		return nil
	})
	if err != nil {
		return MergeResult{}, fmt.Errorf("merge categories: %w", err)
	}

	slog.InfoContext(ctx, "Categories merged",
		"component", "merge",
		"user_id", userID,
		"source_id", sourceID,
		"target_id", targetID,
		"rows", res.ExpensesMoved,
		"subcategories", len(res.Renamed))
	s.hooks.changed(ctx, amqp.EventCategoryMerged, userID)
	return res, nil
}

// MergeSubcategories moves every expense of sourceID to targetID and
// deletes the source. Both must share a parent category.
func (s *MergeService) MergeSubcategories(ctx context.Context, userID, sourceID, targetID int64) (MergeResult, error) {
	if sourceID == targetID {
		return MergeResult{}, core.ErrSameSource
	}

	var res MergeResult
	err := s.store.WithTx(ctx, func(tx Store) error {
		source, err := tx.GetSubcategory(ctx, userID, sourceID)
		if err != nil {
			return fmt.Errorf("get source subcategory %d: %w", sourceID, err)
		}
		target, err := tx.GetSubcategory(ctx, userID, targetID)
		if err != nil {
			return fmt.Errorf("get target subcategory %d: %w", targetID, err)
		}
		if source.CategoryID != target.CategoryID {
			return core.NewValidationError("target_id", "subcategories must belong to the same category")
		}
		res.SourceName, res.TargetName = source.Name, target.Name

		res.ExpensesMoved, err = tx.ReassignSubcategory(ctx, userID, sourceID, targetID)
		if err != nil {
			return err
		}
		if err := tx.DeleteSubcategory(ctx, sourceID); err != nil {
			return fmt.Errorf("delete source subcategory: %w", err)
		}
		return nil
	})
	if err != nil {
		return MergeResult{}, fmt.Errorf("merge subcategories: %w", err)
	}

	slog.InfoContext(ctx, "Subcategories merged",
		"component", "merge",
		"user_id", userID,
		"source_id", sourceID,
		"target_id", targetID,
		"rows", res.ExpensesMoved)
	s.hooks.changed(ctx, amqp.EventSubcategoryMerged, userID)
	return res, nil
}

// uniqueSubcategoryName returns base, or base followed by " 1", " 2", ...
// when base is already taken under categoryID.
func uniqueSubcategoryName(ctx context.Context, st Store, categoryID int64, base string) (string, error) {
	name := base
	for n := 1; ; n++ {
		taken, err := st.SubcategoryNameExists(ctx, categoryID, name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
		name = base + " " + strconv.Itoa(n)
	}
}
