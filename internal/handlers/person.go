package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timeline-dev/timelines/internal/utils"
	"github.com/timeline-dev/timelines/internal/views"
)

const personNotFound = "Person not found"

type PersonForm struct {
	Name string `form:"name" binding:"required,notblank"`
}

func (h *Handler) personPage(ctx *gin.Context, title string) views.Page {
	page := h.page(ctx, title)
	page.ShowBackButton = true
	page.BackURL = "/people"
	return page
}

func (h *Handler) ListPeople(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	people, err := h.People.List(ctx.Request.Context(), userID)

	if err != nil {
		h.serverError(ctx, err)
		return
	}

	page := h.page(ctx, "People")
	page.Data = people

	h.render(ctx, http.StatusOK, "people/index", page, gin.H{"people": people})
}

func (h *Handler) NewPerson(ctx *gin.Context) {
	page := h.personPage(ctx, "New Person")
	page.Focus = "name"

	h.render(ctx, http.StatusOK, "people/form", page, gin.H{})
}

func (h *Handler) CreatePerson(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	var form PersonForm

	errs, ok := h.bind(ctx, &form)
	if !ok {
		return
	}

	if !errs.Empty() {
		page := h.personPage(ctx, "New Person")
		page.Errors = errs
		page.Values = map[string]string{"name": form.Name}
		h.invalid(ctx, "people/form", page, "name")
		return
	}

	if _, err := h.People.Create(ctx.Request.Context(), userID, form.Name); err != nil {
		h.serverError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/people")
}

func (h *Handler) EditPerson(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		h.notFound(ctx, personNotFound)
		return
	}

	person, err := h.People.Get(ctx.Request.Context(), userID, id)

	if err != nil {
		h.fail(ctx, err, personNotFound)
		return
	}

	page := h.personPage(ctx, "Edit Person")
	page.Values = map[string]string{"name": person.Name}

	h.render(ctx, http.StatusOK, "people/form", page, gin.H{"person": person})
}

func (h *Handler) UpdatePerson(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		h.notFound(ctx, personNotFound)
		return
	}

	var form PersonForm

	errs, ok := h.bind(ctx, &form)
	if !ok {
		return
	}

	if !errs.Empty() {
		page := h.personPage(ctx, "Edit Person")
		page.Errors = errs
		page.Values = map[string]string{"name": form.Name}
		h.invalid(ctx, "people/form", page, "name")
		return
	}

	if _, err := h.People.Update(ctx.Request.Context(), userID, id, form.Name); err != nil {
		h.fail(ctx, err, personNotFound)
		return
	}

	ctx.Redirect(http.StatusFound, "/people")
}

func (h *Handler) DeletePerson(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		h.notFound(ctx, personNotFound)
		return
	}

	if err := h.People.Delete(ctx.Request.Context(), userID, id); err != nil {
		h.fail(ctx, err, personNotFound)
		return
	}

	h.flash(ctx, "Person deleted")

	ctx.Redirect(http.StatusFound, "/people")
}
