package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timeline-dev/timelines/internal/models"
	"github.com/timeline-dev/timelines/internal/services"
	"github.com/timeline-dev/timelines/internal/utils"
	"github.com/timeline-dev/timelines/internal/views"
)

const timelineNotFound = "Timeline not found"

var timelineFieldOrder = []string{"title", "description", "imageUrl"}

// CreateTimelineForm requires description to be submitted, even if empty.
type CreateTimelineForm struct {
	Title       string  `form:"title" binding:"required,notblank"`
	Description *string `form:"description" binding:"required"`
	ImageURL    string  `form:"imageUrl" label:"Cover image" binding:"omitempty,url"`
}

type UpdateTimelineForm struct {
	Title       string `form:"title" binding:"required,notblank,min=5"`
	Description string `form:"description"`
	ImageURL    string `form:"imageUrl" label:"Cover image" binding:"omitempty,url"`
}

type timelineView struct {
	Timeline *models.Timeline  `json:"timeline"`
	Tab      string            `json:"tab"`
	Events   []models.Event    `json:"events,omitempty"`
	Places   []models.Location `json:"places,omitempty"`
	People   []models.Person   `json:"people,omitempty"`
}

func eventsPath(id uint) string {
	return fmt.Sprintf("/timeline/%d/events", id)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (h *Handler) ListTimelines(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	timelines, err := h.Timelines.List(ctx.Request.Context(), userID)

	if err != nil {
		h.serverError(ctx, err)
		return
	}

	page := h.page(ctx, "Timelines")
	page.Data = timelines

	h.render(ctx, http.StatusOK, "timelines/index", page, gin.H{"timelines": timelines})
}

func (h *Handler) NewTimeline(ctx *gin.Context) {
	page := h.page(ctx, "New Timeline")
	page.ShowBackButton = true
	page.Focus = "title"

	h.render(ctx, http.StatusOK, "timelines/new", page, gin.H{})
}

func (h *Handler) CreateTimeline(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	var form CreateTimelineForm

	errs, ok := h.bind(ctx, &form)
	if !ok {
		return
	}

	if !errs.Empty() {
		page := h.page(ctx, "New Timeline")
		page.ShowBackButton = true
		page.Errors = errs
		page.Values = map[string]string{
			"title":       form.Title,
			"description": deref(form.Description),
			"imageUrl":    form.ImageURL,
		}
		h.invalid(ctx, "timelines/new", page, timelineFieldOrder...)
		return
	}

	imageURL := form.ImageURL

	timeline, err := h.Timelines.Create(ctx.Request.Context(), userID, services.TimelineInput{
		Title:       form.Title,
		Description: form.Description,
		ImageURL:    &imageURL,
	})

	if err != nil {
		h.serverError(ctx, err)
		return
	}

	h.Log.Info(ctx.Request.Context(), "timeline created", "timeline_id", timeline.ID, "user_id", userID)

	ctx.Redirect(http.StatusFound, eventsPath(timeline.ID))
}

// ShowTimeline renders the timeline shell with the named tab selected.
func (h *Handler) ShowTimeline(tab string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := h.currentUserID(ctx)
		if !ok {
			return
		}

		id, ok := utils.ParamID(ctx, "id")
		if !ok {
			h.notFound(ctx, timelineNotFound)
			return
		}

		rctx := ctx.Request.Context()

		timeline, err := h.Timelines.Get(rctx, userID, id)

		if err != nil {
			h.fail(ctx, err, timelineNotFound)
			return
		}

		view := timelineView{Timeline: timeline, Tab: tab}

		switch tab {
		case "events":
			view.Events, err = h.Events.List(rctx, userID, id)
		case "places":
			view.Places, err = h.Events.Places(rctx, userID, id)
		case "people":
			view.People, err = h.People.List(rctx, userID)
		}

		if err != nil {
			h.fail(ctx, err, timelineNotFound)
			return
		}

		page := h.page(ctx, timeline.Title)
		page.Description = deref(timeline.Description)
		page.Tabs = views.TimelineTabs(timeline.ID, tab)
		page.Data = view

		h.render(ctx, http.StatusOK, "timelines/show", page, view)
	}
}

func (h *Handler) DeleteTimeline(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		h.notFound(ctx, timelineNotFound)
		return
	}

	if err := h.Timelines.Delete(ctx.Request.Context(), userID, id); err != nil {
		h.fail(ctx, err, timelineNotFound)
		return
	}

	h.Log.Info(ctx.Request.Context(), "timeline deleted", "timeline_id", id, "user_id", userID)
	h.Hub.Broadcast(id)
	h.flash(ctx, "Timeline deleted")

	ctx.Redirect(http.StatusFound, "/timelines")
}

func (h *Handler) EditTimeline(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		h.notFound(ctx, timelineNotFound)
		return
	}

	timeline, err := h.Timelines.Get(ctx.Request.Context(), userID, id)

	if err != nil {
		h.fail(ctx, err, timelineNotFound)
		return
	}

	page := h.page(ctx, "Edit Timeline")
	page.ShowBackButton = true
	page.BackURL = eventsPath(timeline.ID)
	page.Values = map[string]string{
		"title":       timeline.Title,
		"description": deref(timeline.Description),
		"imageUrl":    deref(timeline.ImageURL),
	}

	h.render(ctx, http.StatusOK, "timelines/edit", page, gin.H{"timeline": timeline})
}

// UpdateTimeline only touches description and imageUrl when they were submitted.
func (h *Handler) UpdateTimeline(ctx *gin.Context) {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return
	}

	id, ok := utils.ParamID(ctx, "id")
	if !ok {
		h.notFound(ctx, timelineNotFound)
		return
	}

	var form UpdateTimelineForm

	errs, ok := h.bind(ctx, &form)
	if !ok {
		return
	}

	if !errs.Empty() {
		page := h.page(ctx, "Edit Timeline")
		page.ShowBackButton = true
		page.BackURL = eventsPath(id)
		page.Errors = errs
		page.Values = map[string]string{
			"title":       form.Title,
			"description": form.Description,
			"imageUrl":    form.ImageURL,
		}
		h.invalid(ctx, "timelines/edit", page, timelineFieldOrder...)
		return
	}

	update := services.TimelineUpdate{Title: form.Title}

	if _, present := ctx.GetPostForm("description"); present {
		update.Description = &form.Description
	}

	if _, present := ctx.GetPostForm("imageUrl"); present {
		update.ImageURL = &form.ImageURL
	}

	timeline, err := h.Timelines.Update(ctx.Request.Context(), userID, id, update)

	if err != nil {
		h.fail(ctx, err, timelineNotFound)
		return
	}

	ctx.Redirect(http.StatusFound, eventsPath(timeline.ID))
}
