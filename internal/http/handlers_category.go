package http

import (
	"fmt"
	"net/http"

	"tally/internal/core"
	"tally/internal/log"
	"tally/internal/services"
)

func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	categories, err := s.svc.Categories.List(ctx, currentUser(ctx).ID)
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	s.render(w, r, http.StatusOK, "categories.html", pageData{Title: "Categories", Nav: "categories", Data: categories})
}

type categoryFormView struct {
	Category core.Category
	Action   string
}

func (s *Server) renderCategoryForm(w http.ResponseWriter, r *http.Request, status int, c core.Category, formErr string) {
	view := categoryFormView{Category: c, Action: "/categories/new"}
	title := "New category"
	if c.ID != 0 {
		view.Action = fmt.Sprintf("/categories/%d/edit", c.ID)
		title = "Edit category"
	}
	s.render(w, r, status, "category_form.html", pageData{Title: title, Nav: "categories", Error: formErr, Data: view})
}

func (s *Server) handleCategoryNewForm(w http.ResponseWriter, r *http.Request) {
	s.renderCategoryForm(w, r, http.StatusOK, core.Category{}, "")
}

func (s *Server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	in := core.Category{Name: sanitizeInput(r.PostForm.Get("name")), Description: sanitizeInput(r.PostForm.Get("description"))}

	ctx, cancel := requestContext(r)
	defer cancel()
	created, err := s.svc.Categories.Create(ctx, currentUser(ctx).ID, in.Name, in.Description)
	if err != nil {
		if core.IsValidation(err) {
			s.renderCategoryForm(w, r, http.StatusUnprocessableEntity, in, err.Error())
			return
		}
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}
	redirect(w, r, "/categories", fmt.Sprintf("Category %q created", created.Name))
}

func (s *Server) handleCategoryEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Category not found").Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	c, err := s.svc.Categories.Get(ctx, currentUser(ctx).ID, id)
	cancel()
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}
	s.renderCategoryForm(w, r, http.StatusOK, c, "")
}

func (s *Server) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Category not found").Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	in := core.Category{ID: id, Name: sanitizeInput(r.PostForm.Get("name")), Description: sanitizeInput(r.PostForm.Get("description"))}

	ctx, cancel := requestContext(r)
	defer cancel()
	if _, err := s.svc.Categories.Update(ctx, currentUser(ctx).ID, id, in.Name, in.Description); err != nil {
		if core.IsValidation(err) {
			s.renderCategoryForm(w, r, http.StatusUnprocessableEntity, in, err.Error())
			return
		}
		s.writeServiceError(w, r, log.OpUpdate, err)
		return
	}
	redirect(w, r, "/categories", "Category updated")
}

func (s *Server) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Category not found").Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	if err := s.svc.Categories.Delete(ctx, currentUser(ctx).ID, id); err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}
	redirect(w, r, "/categories", "Category deleted")
}

type mergeOption struct {
	ID    int64
	Label string
}

type mergeView struct {
	Heading string
	Action  string
	Back    string
	Options []mergeOption
}

func (s *Server) handleCategoryMergeForm(w http.ResponseWriter, r *http.Request) {
	s.renderCategoryMerge(w, r, http.StatusOK, "")
}

func (s *Server) renderCategoryMerge(w http.ResponseWriter, r *http.Request, status int, formErr string) {
	ctx, cancel := requestContext(r)
	defer cancel()

	categories, err := s.svc.Categories.List(ctx, currentUser(ctx).ID)
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	view := mergeView{Heading: "Merge categories", Action: "/categories/merge", Back: "/categories"}
	for _, c := range categories {
		view.Options = append(view.Options, mergeOption{ID: c.ID, Label: fmt.Sprintf("%s (%d expenses)", c.Name, c.ExpenseCount)})
	}
	s.render(w, r, status, "merge.html", pageData{Title: view.Heading, Nav: "categories", Error: formErr, Data: view})
}

func (s *Server) handleCategoryMerge(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	sourceID, targetID := formID(r.PostForm, "source_id"), formID(r.PostForm, "target_id")

	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)

	res, err := s.svc.Merge.MergeCategories(ctx, user.ID, sourceID, targetID)
	if err != nil {
		if core.IsValidation(err) {
			s.renderCategoryMerge(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.writeServiceError(w, r, log.OpMerge, err)
		return
	}
	s.logger.InfoContext(ctx, "Categories merged",
		log.NewFields().WithUser(user.ID).WithMerge(sourceID, targetID).ToSlice()...)
	redirect(w, r, "/categories", fmt.Sprintf("Merged %q into %q, %d expenses moved", res.SourceName, res.TargetName, res.ExpensesMoved))
}

func (s *Server) handleSubcategoryCreate(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Category not found").Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	sub, err := s.svc.Categories.CreateSubcategory(ctx, currentUser(ctx).ID, categoryID, sanitizeInput(r.PostForm.Get("name")))
	if err != nil {
		s.writeServiceError(w, r, log.OpCreate, err)
		return
	}
	redirect(w, r, "/categories", fmt.Sprintf("Subcategory %q added", sub.Name))
}

type subcategoryFormView struct {
	Subcategory core.Subcategory
	Category    core.Category
}

func (s *Server) renderSubcategoryForm(w http.ResponseWriter, r *http.Request, status int, sub core.Subcategory, formErr string) {
	ctx, cancel := requestContext(r)
	defer cancel()

	parent, err := s.svc.Categories.Get(ctx, currentUser(ctx).ID, sub.CategoryID)
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}
	s.render(w, r, status, "subcategory_form.html", pageData{
		Title: "Edit subcategory",
		Nav:   "categories",
		Error: formErr,
		Data:  subcategoryFormView{Subcategory: sub, Category: parent},
	})
}

func (s *Server) handleSubcategoryEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Subcategory not found").Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	sub, err := s.svc.Categories.GetSubcategory(ctx, currentUser(ctx).ID, id)
	cancel()
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}
	s.renderSubcategoryForm(w, r, http.StatusOK, sub, "")
}

func (s *Server) handleSubcategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Subcategory not found").Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	name := sanitizeInput(r.PostForm.Get("name"))

	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)
	if _, err := s.svc.Categories.UpdateSubcategory(ctx, user.ID, id, name); err != nil {
		if core.IsValidation(err) {
			sub, getErr := s.svc.Categories.GetSubcategory(ctx, user.ID, id)
			if getErr == nil {
				sub.Name = name
				s.renderSubcategoryForm(w, r, http.StatusUnprocessableEntity, sub, err.Error())
				return
			}
		}
		s.writeServiceError(w, r, log.OpUpdate, err)
		return
	}
	redirect(w, r, "/categories", "Subcategory updated")
}

func (s *Server) handleSubcategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Subcategory not found").Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	sub, err := s.svc.Categories.DeleteSubcategory(ctx, currentUser(ctx).ID, id)
	if err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}
	redirect(w, r, "/categories", fmt.Sprintf("Subcategory %q deleted", sub.Name))
}

func (s *Server) handleSubcategoryMergeForm(w http.ResponseWriter, r *http.Request) {
	s.renderSubcategoryMerge(w, r, http.StatusOK, "")
}

func (s *Server) renderSubcategoryMerge(w http.ResponseWriter, r *http.Request, status int, formErr string) {
	categoryID, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Category not found").Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	parent, err := s.svc.Categories.Get(ctx, currentUser(ctx).ID, categoryID)
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}
	view := mergeView{
		Heading: "Merge subcategories of " + parent.Name,
		Action:  fmt.Sprintf("/categories/%d/subcategories/merge", parent.ID),
		Back:    "/categories",
	}
	for _, sub := range parent.Subcategories {
		view.Options = append(view.Options, mergeOption{ID: sub.ID, Label: sub.Name})
	}
	s.render(w, r, status, "merge.html", pageData{Title: view.Heading, Nav: "categories", Error: formErr, Data: view})
}

func (s *Server) handleSubcategoryMerge(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Category not found").Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	sourceID, targetID := formID(r.PostForm, "source_id"), formID(r.PostForm, "target_id")

	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)

	// The source must sit under the category in the URL; the service
	// checks the target shares its parent.
	source, err := s.svc.Categories.GetSubcategory(ctx, user.ID, sourceID)
	if err == nil && source.CategoryID != categoryID {
		err = core.NewValidationError("source_id", "subcategory belongs to another category")
	}
	var res services.MergeResult
	if err == nil {
		res, err = s.svc.Merge.MergeSubcategories(ctx, user.ID, sourceID, targetID)
	}
	if err != nil {
		if core.IsValidation(err) {
			s.renderSubcategoryMerge(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.writeServiceError(w, r, log.OpMerge, err)
		return
	}
	s.logger.InfoContext(ctx, "Subcategories merged",
		log.NewFields().WithUser(user.ID).WithMerge(sourceID, targetID).ToSlice()...)
	redirect(w, r, "/categories", fmt.Sprintf("Merged %q into %q, %d expenses moved", res.SourceName, res.TargetName, res.ExpensesMoved))
}

type subcategoryJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// handleSubcategoriesJSON feeds the dependent dropdown on the expense form.
func (s *Server) handleSubcategoriesJSON(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(r, "id")
	if !ok {
		s.writeAPIError(w, r, log.OpList, core.ErrNotFound)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	subs, err := s.svc.Categories.Subcategories(ctx, currentUser(ctx).ID, categoryID)
	if err != nil {
		s.writeAPIError(w, r, log.OpList, err)
		return
	}
	out := make([]subcategoryJSON, 0, len(subs))
	for _, sub := range subs {
		out = append(out, subcategoryJSON{ID: sub.ID, Name: sub.Name})
	}
	NewHTMXResponse().JSON(out).Write(w)
}
