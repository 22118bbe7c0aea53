package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timeline-dev/timelines/internal/logging"
	"github.com/timeline-dev/timelines/internal/models"
	"github.com/timeline-dev/timelines/internal/services"
	"github.com/timeline-dev/timelines/internal/testutil"
)

func TestRun_SeedsFixtures(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()

	result, err := Run(ctx, conn, logging.Discard())
	require.NoError(t, err)

	require.Len(t, result.Users, 2)
	require.Len(t, result.Timelines, 2)
	assert.Equal(t, 3, result.Events)
	assert.Equal(t, 2, result.Locations)

	user, err := services.NewUserService(conn).Verify(ctx, "demo@user.com", "demouser")
	require.NoError(t, err)

	list, err := services.NewTimelineService(conn).List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "My first timeline", list[0].Title)

	events, err := services.NewEventService(conn).List(ctx, user.ID, list[0].ID)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestRun_IsIdempotentForFixtureUsers(t *testing.T) {
	conn := testutil.NewDB(t)
	ctx := context.Background()

	// a user outside the fixtures must survive reseeding
	other, err := services.NewUserService(conn).Create(ctx, "someone@else.com", "password123")
	require.NoError(t, err)

	_, err = Run(ctx, conn, logging.Discard())
	require.NoError(t, err)
	_, err = Run(ctx, conn, logging.Discard())
	require.NoError(t, err)

	var users, passwords, timelines, events, locations int64
	require.NoError(t, conn.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, conn.Model(&models.Password{}).Count(&passwords).Error)
	require.NoError(t, conn.Model(&models.Timeline{}).Count(&timelines).Error)
	require.NoError(t, conn.Model(&models.Event{}).Count(&events).Error)
	require.NoError(t, conn.Model(&models.Location{}).Count(&locations).Error)

	assert.Equal(t, int64(3), users)
	assert.Equal(t, int64(3), passwords)
	assert.Equal(t, int64(2), timelines)
	assert.Equal(t, int64(3), events)
	assert.Equal(t, int64(2), locations)

	_, err = services.NewUserService(conn).Get(ctx, other.ID)
	assert.NoError(t, err)
}
