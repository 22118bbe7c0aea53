// Package seed bootstraps a development database with fixture users and
// their timelines.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timeline-dev/timelines/internal/logging"
	"github.com/timeline-dev/timelines/internal/models"
	"github.com/timeline-dev/timelines/internal/services"
	"gorm.io/gorm"
)

const passwordCost = 10

type fixtureUser struct {
	Email    string
	Password string
}

type fixtureEvent struct {
	Title     string
	Content   string
	StartDate time.Time
}

var fixtureUsers = []fixtureUser{
	{Email: "demo@user.com", Password: "demouser"},
	{Email: "noname.olsson@gmail.com", Password: "abc123abc123"},
}

var fixtureEvents = []fixtureEvent{
	{Title: "My first event", Content: "The biggest event ever", StartDate: date(2020, time.January, 5)},
	{Title: "The journey begins", Content: "I am so excited", StartDate: date(2020, time.January, 5)},
	{Title: "I am on my way", StartDate: date(2020, time.January, 8)},
}

var fixtureLocations = []string{"Stockholm", "Malmö"}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strptr(s string) *string { return &s }

// Result reports what Run created.
type Result struct {
	Users     []models.User
	Timelines []models.Timeline
	Events    int
	Locations int
}

// Run removes the fixture users (and everything they own) and recreates them.
// Running it twice leaves the same fixture rows behind.
func Run(ctx context.Context, conn *gorm.DB, log logging.Logger) (*Result, error) {
	users := services.NewUserService(conn)

	for _, u := range fixtureUsers {
		if err := users.DeleteByEmail(ctx, u.Email); err != nil && !errors.Is(err, services.ErrNotFound) {
			return nil, fmt.Errorf("remove fixture user %s: %w", u.Email, err)
		}
	}

	var result Result

	err := conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := services.NewUserService(tx).WithCost(passwordCost)
		timelines := services.NewTimelineService(tx)
		events := services.NewEventService(tx)
		locations := services.NewLocationService(tx)

		for _, u := range fixtureUsers {
			user, err := users.Create(ctx, u.Email, u.Password)
			if err != nil {
				return fmt.Errorf("create fixture user %s: %w", u.Email, err)
			}
			result.Users = append(result.Users, *user)
		}

		first, second := result.Users[0], result.Users[1]

		timeline1, err := timelines.Create(ctx, first.ID, services.TimelineInput{
			Title:       "My first timeline",
			Description: strptr("The biggest timeline ever"),
		})
		if err != nil {
			return err
		}

		timeline2, err := timelines.Create(ctx, second.ID, services.TimelineInput{
			Title:       "Vacation",
			Description: strptr("Follow me when I go on vacation"),
		})
		if err != nil {
			return err
		}

		result.Timelines = []models.Timeline{*timeline1, *timeline2}

		for _, e := range fixtureEvents {
			if _, err := events.Create(ctx, first.ID, timeline1.ID, services.EventInput{
				Title:     e.Title,
				Content:   e.Content,
				StartDate: e.StartDate,
			}); err != nil {
				return fmt.Errorf("create fixture event %q: %w", e.Title, err)
			}
			result.Events++
		}

		for _, title := range fixtureLocations {
			if _, err := locations.Create(ctx, second.ID, title); err != nil {
				return fmt.Errorf("create fixture location %q: %w", title, err)
			}
			result.Locations++
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Info(ctx, "database has been seeded",
		"users", len(result.Users),
		"timelines", len(result.Timelines),
		"events", result.Events,
		"locations", result.Locations,
	)

	return &result, nil
}
