package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timeline-dev/timelines/internal/utils"
)

const locationNotFound = "Place not found"

type LocationForm struct {
	Title string `form:"title" binding:"required,notblank"`
}

func (h *Handler) ListLocations(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	locations, err := h.Locations.List(ctx.Request.Context(), userID)

	if err != nil {
		h.serverError(ctx, err)
		return
	}

	page := h.page(ctx, "Places")
	page.Data = locations

	h.render(ctx, http.StatusOK, "locations/index", page, gin.H{"locations": locations})
}

func (h *Handler) NewLocation(ctx *gin.Context) {
	page := h.page(ctx, "New Place")
	page.ShowBackButton = true
	page.BackURL = "/locations"
	page.Focus = "title"

	h.render(ctx, http.StatusOK, "locations/form", page, gin.H{})
}

func (h *Handler) CreateLocation(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	var form LocationForm

	errs, ok := h.bind(ctx, &form)
	if !ok {
		return
	}

	if !errs.Empty() {
		page := h.page(ctx, "New Place")
		page.ShowBackButton = true
		page.BackURL = "/locations"
		page.Errors = errs
		page.Values = map[string]string{"title": form.Title}
		h.invalid(ctx, "locations/form", page, "title")
		return
	}

	if _, err := h.Locations.Create(ctx.Request.Context(), userID, form.Title); err != nil {
		h.serverError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/locations")
}

func (h *Handler) EditLocation(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		h.notFound(ctx, locationNotFound)
		return
	}

	location, err := h.Locations.Get(ctx.Request.Context(), userID, id)

	if err != nil {
		h.fail(ctx, err, locationNotFound)
		return
	}

	page := h.page(ctx, "Edit Place")
	page.ShowBackButton = true
	page.BackURL = "/locations"
	page.Values = map[string]string{"title": location.Title}

	h.render(ctx, http.StatusOK, "locations/form", page, gin.H{"location": location})
}

func (h *Handler) UpdateLocation(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		h.notFound(ctx, locationNotFound)
		return
	}

	var form LocationForm

	errs, ok := h.bind(ctx, &form)
	if !ok {
		return
	}

	if !errs.Empty() {
		page := h.page(ctx, "Edit Place")
		page.ShowBackButton = true
		page.BackURL = "/locations"
		page.Errors = errs
		page.Values = map[string]string{"title": form.Title}
		h.invalid(ctx, "locations/form", page, "title")
		return
	}

	if _, err := h.Locations.Update(ctx.Request.Context(), userID, id, form.Title); err != nil {
		h.fail(ctx, err, locationNotFound)
		return
	}

	ctx.Redirect(http.StatusFound, "/locations")
}

func (h *Handler) DeleteLocation(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		h.notFound(ctx, locationNotFound)
		return
	}

	if err := h.Locations.Delete(ctx.Request.Context(), userID, id); err != nil {
		h.fail(ctx, err, locationNotFound)
		return
	}

	h.Log.Info(ctx.Request.Context(), "location deleted", "location_id", id, "user_id", userID)
	h.flash(ctx, "Place deleted")

	ctx.Redirect(http.StatusFound, "/locations")
}
