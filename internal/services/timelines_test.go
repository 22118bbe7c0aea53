package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineService_CreateGet(t *testing.T) {
	conn, alice, _ := setup(t)
	svc := NewTimelineService(conn)
	ctx := context.Background()

	created, err := svc.Create(ctx, alice.ID, TimelineInput{Title: "My Timeline", Description: ptr(""), ImageURL: ptr("")})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.Get(ctx, alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "My Timeline", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "", *got.Description)
	assert.Equal(t, alice.ID, got.UserID)
}

func TestTimelineService_OtherOwnerIsNotFound(t *testing.T) {
	conn, alice, bob := setup(t)
	svc := NewTimelineService(conn)
	ctx := context.Background()

	timeline, err := svc.Create(ctx, alice.ID, TimelineInput{Title: "Private"})
	require.NoError(t, err)

	_, errForeign := svc.Get(ctx, bob.ID, timeline.ID)
	_, errMissing := svc.Get(ctx, bob.ID, timeline.ID+1000)

	assert.ErrorIs(t, errForeign, ErrNotFound)
	assert.ErrorIs(t, errMissing, ErrNotFound)
	assert.Equal(t, errMissing, errForeign)

	_, err = svc.Update(ctx, bob.ID, timeline.ID, TimelineUpdate{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, bob.ID, timeline.ID), ErrNotFound)

	got, err := svc.Get(ctx, alice.ID, timeline.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestTimelineService_UpdateKeepsOmittedFields(t *testing.T) {
	conn, alice, _ := setup(t)
	svc := NewTimelineService(conn)
	ctx := context.Background()

	timeline, err := svc.Create(ctx, alice.ID, TimelineInput{Title: "Before", Description: ptr("kept"), ImageURL: ptr("https://example.com/a.png")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice.ID, timeline.ID, TimelineUpdate{Title: "After edit"})
	require.NoError(t, err)
	assert.Equal(t, "After edit", updated.Title)

	got, err := svc.Get(ctx, alice.ID, timeline.ID)
	require.NoError(t, err)
	assert.Equal(t, "After edit", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "kept", *got.Description)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://example.com/a.png", *got.ImageURL)

	_, err = svc.Update(ctx, alice.ID, timeline.ID, TimelineUpdate{Title: "After edit", Description: ptr("changed")})
	require.NoError(t, err)

	got, err = svc.Get(ctx, alice.ID, timeline.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", *got.Description)
}

func TestTimelineService_DeleteCascadesEvents(t *testing.T) {
	conn, alice, _ := setup(t)
	timelines := NewTimelineService(conn)
	events := NewEventService(conn)
	ctx := context.Background()

	timeline, err := timelines.Create(ctx, alice.ID, TimelineInput{Title: "Doomed"})
	require.NoError(t, err)

	event, err := events.Create(ctx, alice.ID, timeline.ID, EventInput{Title: "First", StartDate: time.Date(2020, 1, 5, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	require.NoError(t, timelines.Delete(ctx, alice.ID, timeline.ID))

	_, err = timelines.Get(ctx, alice.ID, timeline.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = events.Get(ctx, alice.ID, timeline.ID, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var remaining int64
	require.NoError(t, conn.Table("events").Where("timeline_id = ?", timeline.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestTimelineService_ListOnlyOwn(t *testing.T) {
	conn, alice, bob := setup(t)
	svc := NewTimelineService(conn)
	ctx := context.Background()

	_, err := svc.Create(ctx, alice.ID, TimelineInput{Title: "Alice one"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, TimelineInput{Title: "Bob one"})
	require.NoError(t, err)

	list, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice one", list[0].Title)
}

func TestTimelineService_DatabaseErrorIsNotNotFound(t *testing.T) {
	conn, alice, _ := setup(t)
	svc := NewTimelineService(conn)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.Get(context.Background(), alice.ID, 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
