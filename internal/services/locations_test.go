package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timeline-dev/timelines/internal/models"
)

func TestLocationService_CRUD(t *testing.T) {
	conn, alice, bob := setup(t)
	ctx := context.Background()
	svc := NewLocationService(conn)

	loc, err := svc.Create(ctx, alice.ID, "Stockholm")
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob.ID, loc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, bob.ID, loc.ID, "Oslo")
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(ctx, alice.ID, loc.ID, "Göteborg")
	require.NoError(t, err)
	assert.Equal(t, "Göteborg", updated.Title)

	list, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = svc.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLocationService_DeleteDetachesEvents(t *testing.T) {
	conn, alice, _ := setup(t)
	ctx := context.Background()
	locations := NewLocationService(conn)
	timelines := NewTimelineService(conn)
	events := NewEventService(conn)

	loc, err := locations.Create(ctx, alice.ID, "Malmö")
	require.NoError(t, err)
	timeline, err := timelines.Create(ctx, alice.ID, TimelineInput{Title: "Summer"})
	require.NoError(t, err)
	event, err := events.Create(ctx, alice.ID, timeline.ID, EventInput{Title: "Beach", StartDate: day(2023, 7, 1), LocationID: &loc.ID})
	require.NoError(t, err)

	require.NoError(t, locations.Delete(ctx, alice.ID, loc.ID))

	_, err = locations.Get(ctx, alice.ID, loc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var stored models.Event
	require.NoError(t, conn.First(&stored, event.ID).Error)
	assert.Nil(t, stored.LocationID)
}

func TestPersonService_CRUD(t *testing.T) {
	conn, alice, bob := setup(t)
	ctx := context.Background()
	svc := NewPersonService(conn)

	person, err := svc.Create(ctx, alice.ID, "Astrid")
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob.ID, person.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(ctx, alice.ID, person.ID, "Astrid L.")
	require.NoError(t, err)
	assert.Equal(t, "Astrid L.", updated.Name)

	assert.ErrorIs(t, svc.Delete(ctx, bob.ID, person.ID), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, alice.ID, person.ID))

	list, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
