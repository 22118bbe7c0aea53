package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/timeline-dev/timelines/internal/models"
	"github.com/timeline-dev/timelines/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

func newUser(t *testing.T, conn *gorm.DB, email string) *models.User {
	t.Helper()

	user, err := NewUserService(conn).WithCost(bcrypt.MinCost).Create(context.Background(), email, "password123")
	require.NoError(t, err)

	return user
}

func setup(t *testing.T) (*gorm.DB, *models.User, *models.User) {
	t.Helper()

	conn := testutil.NewDB(t)

	return conn, newUser(t, conn, "alice@example.com"), newUser(t, conn, "bob@example.com")
}
