package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timeline-dev/timelines/internal/forms"
	"github.com/timeline-dev/timelines/internal/models"
	"github.com/timeline-dev/timelines/internal/services"
	"github.com/timeline-dev/timelines/internal/utils"
	"github.com/timeline-dev/timelines/internal/views"
)

const eventNotFound = "Event not found"

var eventFieldOrder = []string{"title", "startDate", "content", "locationId"}

type EventForm struct {
	Title      string `form:"title" binding:"required,notblank"`
	Content    string `form:"content"`
	StartDate  string `form:"startDate" label:"Start date" binding:"required,datetime=2006-01-02"`
	LocationID string `form:"locationId" label:"Place" binding:"omitempty,numeric"`
}

func (f EventForm) values() map[string]string {
	return map[string]string{
		"title":      f.Title,
		"content":    f.Content,
		"startDate":  f.StartDate,
		"locationId": f.LocationID,
	}
}

// input converts the validated form. Values the validator cannot bound, like
// a place ID overflowing uint, come back as field errors.
func (f EventForm) input() (services.EventInput, forms.Errors) {
	errs := forms.Errors{}

	start, err := time.Parse(views.DateLayout, f.StartDate)
	if err != nil {
		errs.Add("startDate", "Start date must be a date in the form YYYY-MM-DD")
	}

	in := services.EventInput{Title: f.Title, Content: f.Content, StartDate: start}

	if f.LocationID != "" {
		id, err := strconv.ParseUint(f.LocationID, 10, 32)
		if err != nil || id == 0 {
			errs.Add("locationId", "Place not found")
		} else {
			locationID := uint(id)
			in.LocationID = &locationID
		}
	}

	return in, errs
}

func eventValues(event *models.Event) map[string]string {
	values := map[string]string{
		"title":     event.Title,
		"content":   event.Content,
		"startDate": time.Time(event.StartDate).Format(views.DateLayout),
	}

	if event.LocationID != nil {
		values["locationId"] = strconv.FormatUint(uint64(*event.LocationID), 10)
	}

	return values
}

// locationOptions lists the caller's places for the event form.
func (h *Handler) locationOptions(ctx *gin.Context, userID uint) ([]views.Option, error) {
	locations, err := h.Locations.List(ctx.Request.Context(), userID)

	if err != nil {
		return nil, err
	}

	options := make([]views.Option, 0, len(locations))
	for _, l := range locations {
		options = append(options, views.Option{Value: strconv.FormatUint(uint64(l.ID), 10), Label: l.Title})
	}

	return options, nil
}

func (h *Handler) eventParams(ctx *gin.Context) (userID, timelineID uint, ok bool) {
	if userID, ok = h.currentUserID(ctx); !ok {
		return 0, 0, false
	}

	if timelineID, ok = utils.ParamID(ctx, "id"); !ok {
		h.notFound(ctx, timelineNotFound)
		return 0, 0, false
	}

	return userID, timelineID, true
}

func (h *Handler) eventPage(ctx *gin.Context, title string, timelineID uint, userID uint) (views.Page, bool) {
	options, err := h.locationOptions(ctx, userID)

	if err != nil {
		h.serverError(ctx, err)
		return views.Page{}, false
	}

	page := h.page(ctx, title)
	page.ShowBackButton = true
	page.BackURL = eventsPath(timelineID)
	page.Data = options

	return page, true
}

func (h *Handler) NewEvent(ctx *gin.Context) {
	userID, timelineID, ok := h.eventParams(ctx)
	if !ok {
		return
	}

	if _, err := h.Timelines.Get(ctx.Request.Context(), userID, timelineID); err != nil {
		h.fail(ctx, err, timelineNotFound)
		return
	}

	page, ok := h.eventPage(ctx, "New Event", timelineID, userID)
	if !ok {
		return
	}

	page.Values = map[string]string{"startDate": time.Now().Format(views.DateLayout)}
	page.Focus = "title"

	h.render(ctx, http.StatusOK, "events/form", page, gin.H{"locations": page.Data})
}

func (h *Handler) CreateEvent(ctx *gin.Context) {
	h.saveEvent(ctx, "New Event", timelineNotFound, func(userID, timelineID uint, in services.EventInput) (*models.Event, error) {
		return h.Events.Create(ctx.Request.Context(), userID, timelineID, in)
	})
}

func (h *Handler) EditEvent(ctx *gin.Context) {
	userID, timelineID, ok := h.eventParams(ctx)
	if !ok {
		return
	}

	eventID, ok := utils.ParamID(ctx, "eventId")
	if !ok {
		h.notFound(ctx, eventNotFound)
		return
	}

	event, err := h.Events.Get(ctx.Request.Context(), userID, timelineID, eventID)

	if err != nil {
		h.fail(ctx, err, eventNotFound)
		return
	}

	page, ok := h.eventPage(ctx, "Edit Event", timelineID, userID)
	if !ok {
		return
	}

	page.Values = eventValues(event)

	h.render(ctx, http.StatusOK, "events/form", page, gin.H{"event": event})
}

func (h *Handler) UpdateEvent(ctx *gin.Context) {
	eventID, ok := utils.ParamID(ctx, "eventId")
	if !ok {
		h.notFound(ctx, eventNotFound)
		return
	}

	h.saveEvent(ctx, "Edit Event", eventNotFound, func(userID, timelineID uint, in services.EventInput) (*models.Event, error) {
		return h.Events.Update(ctx.Request.Context(), userID, timelineID, eventID, in)
	})
}

func (h *Handler) saveEvent(ctx *gin.Context, title, notFoundMessage string, save func(userID, timelineID uint, in services.EventInput) (*models.Event, error)) {
	userID, timelineID, ok := h.eventParams(ctx)
	if !ok {
		return
	}

	var form EventForm

	errs, ok := h.bind(ctx, &form)
	if !ok {
		return
	}

	rerender := func(errs forms.Errors) {
		page, ok := h.eventPage(ctx, title, timelineID, userID)
		if !ok {
			return
		}
		page.Errors = errs
		page.Values = form.values()
		h.invalid(ctx, "events/form", page, eventFieldOrder...)
	}

	if !errs.Empty() {
		rerender(errs)
		return
	}

	in, errs := form.input()

	if !errs.Empty() {
		rerender(errs)
		return
	}

	event, err := save(userID, timelineID, in)

	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			errs := forms.Errors{}
			errs.Add("locationId", "Place not found")
			rerender(errs)
			return
		}
		h.fail(ctx, err, notFoundMessage)
		return
	}

	h.Hub.Broadcast(event.TimelineID)

	ctx.Redirect(http.StatusFound, eventsPath(event.TimelineID))
}

func (h *Handler) DeleteEvent(ctx *gin.Context) {
	userID, timelineID, ok := h.eventParams(ctx)
	if !ok {
		return
	}

	eventID, ok := utils.ParamID(ctx, "eventId")
	if !ok {
		h.notFound(ctx, eventNotFound)
		return
	}

	if err := h.Events.Delete(ctx.Request.Context(), userID, timelineID, eventID); err != nil {
		h.fail(ctx, err, eventNotFound)
		return
	}

	h.Hub.Broadcast(timelineID)
	h.flash(ctx, "Event deleted")

	ctx.Redirect(http.StatusFound, eventsPath(timelineID))
}
