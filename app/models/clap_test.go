package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The works/claps tables are created by hand here because the model tags
// carry MySQL column types that SQLite does not parse.
func newEngagementTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE works (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		uuid TEXT,
		user_id INTEGER,
		title TEXT,
		synopsis TEXT,
		body TEXT,
		category TEXT,
		status TEXT,
		share_link TEXT,
		read_count INTEGER DEFAULT 0,
		impression_count INTEGER DEFAULT 0,
		clap_count INTEGER DEFAULT 0,
		published_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	)`).Error)

	require.NoError(t, db.Exec(`CREATE TABLE claps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		work_id INTEGER,
		created_at DATETIME,
		deleted_at DATETIME
	)`).Error)

	return db
}

func clapCountOf(t *testing.T, db *gorm.DB, workID uint) uint {
	t.Helper()
	var work Work
	require.NoError(t, db.First(&work, workID).Error)
	return work.ClapCount
}

func TestToggleClapMaintainsWorkClapCount(t *testing.T) {
	db := newEngagementTestDB(t)

	work := &Work{
		UserID:   1,
		Title:    "Harmattan Nights",
		Category: CategoryPoem,
		Status:   WorkStatusPublished,
	}
	require.NoError(t, db.Create(work).Error)
	require.Equal(t, uint(0), clapCountOf(t, db, work.ID))

	clapped, err := ToggleClap(db, 7, work.ID)
	require.NoError(t, err)
	assert.True(t, clapped)
	assert.Equal(t, uint(1), clapCountOf(t, db, work.ID))

	clapped, err = ToggleClap(db, 8, work.ID)
	require.NoError(t, err)
	assert.True(t, clapped)
	assert.Equal(t, uint(2), clapCountOf(t, db, work.ID))

	// Un-clap decrements
	clapped, err = ToggleClap(db, 7, work.ID)
	require.NoError(t, err)
	assert.False(t, clapped)
	assert.Equal(t, uint(1), clapCountOf(t, db, work.ID))

	// Re-clap after un-clap counts again
	clapped, err = ToggleClap(db, 7, work.ID)
	require.NoError(t, err)
	assert.True(t, clapped)
	assert.Equal(t, uint(2), clapCountOf(t, db, work.ID))

	// The column agrees with the clap rows
	rows, err := CountClaps(db, work.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)
}

func TestToggleClapIsIdempotentPerUser(t *testing.T) {
	db := newEngagementTestDB(t)

	work := &Work{UserID: 1, Title: "Riverbed", Category: CategoryShortStory, Status: WorkStatusPublished}
	require.NoError(t, db.Create(work).Error)

	// clap, un-clap, clap again: one active row, count 1
	for _, want := range []bool{true, false, true} {
		got, err := ToggleClap(db, 5, work.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	rows, err := CountClaps(db, work.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	assert.Equal(t, uint(1), clapCountOf(t, db, work.ID))
}
