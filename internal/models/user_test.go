package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestPasswordHashing(t *testing.T) {
	user := User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, user.SetPassword("hunter2hunter2"))

	assert.NotEqual(t, "hunter2hunter2", user.Password)
	assert.True(t, user.CheckPassword("hunter2hunter2"))
	assert.False(t, user.CheckPassword("wrong-password"))
}

func TestSanitizeOmitsPassword(t *testing.T) {
	user := User{
		BaseModel: BaseModel{ID: "some-id"},
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "a-hash",
	}

	sanitized := user.Sanitize()
	assert.Equal(t, "some-id", sanitized.ID)
	assert.Equal(t, "alice", sanitized.Username)
	assert.Equal(t, "alice@example.com", sanitized.Email)
}

func TestBeforeCreateAssignsUUID(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))

	user := User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEmpty(t, user.ID)

	// An explicit id is preserved
	other := User{BaseModel: BaseModel{ID: "fixed-id"}, Username: "bob", Email: "bob@example.com", Password: "hash"}
	require.NoError(t, db.Create(&other).Error)
	assert.Equal(t, "fixed-id", other.ID)
}
