package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"tally/internal/core"
	"tally/internal/log"
	"tally/internal/services"
	"tally/internal/tabular"
)

type expenseListView struct {
	Page          core.ExpensePage
	Filter        core.ExpenseFilter
	Query         url.Values
	Categories    []core.Category
	Subcategories []core.Subcategory
}

func (s *Server) handleExpenseList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)

	settings, err := s.svc.Settings.Get(ctx, user.ID)
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}

	q := r.URL.Query()
	filter := ParseExpenseFilter(q, settings.ItemsPerPage)
	page, err := s.svc.Expenses.List(ctx, user.ID, filter)
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}
	categories, err := s.svc.Categories.List(ctx, user.ID)
	if err != nil {
		s.writeServiceError(w, r, log.OpList, err)
		return
	}

	q.Del("page")
	q.Del("flash")
	s.render(w, r, http.StatusOK, "expenses.html", pageData{
		Title:    "Expenses",
		Nav:      "expenses",
		User:     user,
		Settings: settings,
		Data: expenseListView{
			Page:          page,
			Filter:        filter,
			Query:         q,
			Categories:    categories,
			Subcategories: subcategoriesOf(categories, filter.CategoryID),
		},
	})
}

type expenseFormView struct {
	Expense       core.Expense
	Action        string
	Categories    []core.Category
	Subcategories []core.Subcategory
	Editing       bool
}

func (s *Server) renderExpenseForm(w http.ResponseWriter, r *http.Request, status int, e core.Expense, formErr string) {
	ctx, cancel := requestContext(r)
	defer cancel()

	categories, err := s.svc.Categories.List(ctx, currentUser(ctx).ID)
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}

	view := expenseFormView{
		Expense:       e,
		Action:        "/expenses/new",
		Categories:    categories,
		Subcategories: subcategoriesOf(categories, e.CategoryID),
		Editing:       e.ID != 0,
	}
	title := "Add expense"
	if view.Editing {
		view.Action = fmt.Sprintf("/expenses/%d/edit", e.ID)
		title = "Edit expense"
	}
	s.render(w, r, status, "expense_form.html", pageData{Title: title, Nav: "expenses", Error: formErr, Data: view})
}

func (s *Server) handleExpenseNewForm(w http.ResponseWriter, r *http.Request) {
	s.renderExpenseForm(w, r, http.StatusOK, core.Expense{Date: core.DateOf(s.now())}, "")
}

func (s *Server) handleExpenseCreate(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	e, err := ParseExpenseForm(r.PostForm)
	if err != nil {
		s.renderExpenseForm(w, r, http.StatusUnprocessableEntity, e, err.Error())
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	created, err := s.svc.Expenses.Create(ctx, currentUser(ctx).ID, e)
	if err != nil {
		s.expenseFormError(w, r, e, log.OpCreate, err)
		return
	}
	s.logger.InfoContext(ctx, "Expense created",
		log.NewFields().WithUser(created.UserID).WithExpense(created.ID, created.CategoryID, created.Amount.Cents).ToSlice()...)
	redirect(w, r, "/expenses", "Expense added")
}

func (s *Server) handleExpenseEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Expense not found").Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	e, err := s.svc.Expenses.Get(ctx, currentUser(ctx).ID, id)
	cancel()
	if err != nil {
		s.writeServiceError(w, r, log.OpRead, err)
		return
	}
	s.renderExpenseForm(w, r, http.StatusOK, e, "")
}

func (s *Server) handleExpenseUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Expense not found").Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}
	e, err := ParseExpenseForm(r.PostForm)
	e.ID = id
	if err != nil {
		s.renderExpenseForm(w, r, http.StatusUnprocessableEntity, e, err.Error())
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	updated, err := s.svc.Expenses.Update(ctx, currentUser(ctx).ID, e)
	if err != nil {
		s.expenseFormError(w, r, e, log.OpUpdate, err)
		return
	}
	s.logger.InfoContext(ctx, "Expense updated",
		log.NewFields().WithUser(updated.UserID).WithExpense(updated.ID, updated.CategoryID, updated.Amount.Cents).ToSlice()...)
	redirect(w, r, "/expenses", "Expense updated")
}

// expenseFormError re-renders the form for input problems and falls back
// to the generic mapping otherwise.
func (s *Server) expenseFormError(w http.ResponseWriter, r *http.Request, e core.Expense, op string, err error) {
	if core.IsValidation(err) {
		s.renderExpenseForm(w, r, http.StatusUnprocessableEntity, e, err.Error())
		return
	}
	s.writeServiceError(w, r, op, err)
}

func (s *Server) handleExpenseDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFoundError("Expense not found").Write(w)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)

	if err := s.svc.Expenses.Delete(ctx, user.ID, id); err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}
	s.logger.InfoContext(ctx, "Expense deleted", log.FieldUserID, user.ID, log.FieldExpenseID, id)

	// htmx removes the row in place; plain forms go back to the list.
	if r.Header.Get("HX-Request") == "true" {
		NewHTMXResponse().
			TriggerExpensesChanged(id).
			TriggerSuccessNotification("Expense deleted").
			Write(w)
		return
	}
	redirect(w, r, "/expenses", "Expense deleted")
}

func (s *Server) handleExpenseDeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user := currentUser(ctx)

	n, err := s.svc.Expenses.DeleteAll(ctx, user.ID)
	if err != nil {
		s.writeServiceError(w, r, log.OpDelete, err)
		return
	}
	s.logger.InfoContext(ctx, "All expenses deleted", log.FieldUserID, user.ID, log.FieldRows, n)
	redirect(w, r, "/expenses", fmt.Sprintf("Deleted %d expenses", n))
}

type importView struct {
	MaxBytes int64
	Result   *services.ImportResult
}

func (s *Server) handleImportForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "import.html", pageData{
		Title: "Import expenses",
		Nav:   "expenses",
		Data:  importView{MaxBytes: s.opts.ImportMaxBytes},
	})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	renderErr := func(status int, msg string) {
		s.render(w, r, status, "import.html", pageData{
			Title: "Import expenses",
			Nav:   "expenses",
			Error: msg,
			Data:  importView{MaxBytes: s.opts.ImportMaxBytes},
		})
	}

	if s.opts.ImportMaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.ImportMaxBytes)
	}
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			renderErr(http.StatusRequestEntityTooLarge, "The file is too large")
			return
		}
		renderErr(http.StatusBadRequest, "Choose a CSV or XLSX file to upload")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		renderErr(http.StatusBadRequest, "Choose a CSV or XLSX file to upload")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), transferTimeout)
	defer cancel()
	user := currentUser(ctx)

	result, err := s.svc.Transfer.Import(ctx, user.ID, header.Filename, file)
	if err != nil {
		if core.IsValidation(err) {
			renderErr(http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.writeServiceError(w, r, log.OpImport, err)
		return
	}
	s.logger.InfoContext(ctx, "Expenses imported",
		log.FieldUserID, user.ID, log.FieldRows, result.Expenses, log.FieldFormat, header.Filename)

	msg := fmt.Sprintf("Imported %d expenses", result.Expenses)
	if result.Categories > 0 || result.Subcategories > 0 {
		msg += fmt.Sprintf(" (%d new categories, %d new subcategories)", result.Categories, result.Subcategories)
	}
	redirect(w, r, "/expenses", msg)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := tabular.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), transferTimeout)
	defer cancel()

	// Buffer the file so a failure can still produce an error page.
	var buf bytes.Buffer
	if err := s.svc.Transfer.Export(ctx, currentUser(ctx).ID, &buf, format); err != nil {
		s.writeServiceError(w, r, log.OpExport, err)
		return
	}

	NewHTMXResponse().
		Header("Content-Type", format.ContentType()).
		Header("Content-Disposition", `attachment; filename="`+services.ExportFilename(format, s.now())+`"`).
		Header("Content-Length", strconv.Itoa(buf.Len())).
		Body(buf.Bytes()).
		Write(w)
}

// subcategoriesOf returns the subcategories of categoryID from an already
// loaded listing.
func subcategoriesOf(categories []core.Category, categoryID int64) []core.Subcategory {
	for _, c := range categories {
		if c.ID == categoryID {
			return c.Subcategories
		}
	}
	return nil
}
