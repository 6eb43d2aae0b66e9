package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/maum-go-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ActivityRecord{}))

	return db
}

func seedRecord(t *testing.T, repo ActivityRepository, userName, date, timeOfDay string, createdAt time.Time) models.ActivityRecord {
	t.Helper()

	history, err := models.EncodeTranscript([]models.ConversationEntry{
		{Type: models.EntryTypeUser, Content: "안녕하세요", Timestamp: createdAt},
		{Type: models.EntryTypeBot, Content: "반가워요!", Timestamp: createdAt},
	})
	require.NoError(t, err)

	record := models.ActivityRecord{
		UserID:              "uid-1",
		UserName:            userName,
		UserEmail:           "student@school.kr",
		ChatDuration:        42,
		DrawingDuration:     95,
		ConversationHistory: history,
		ActivityDate:        date,
		ActivityTime:        timeOfDay,
		ImageURL:            "https://res.example.com/drawings/uid-1/1.jpg",
		CreatedAt:           createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), &record))
	require.NotZero(t, record.ID)

	return record
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	repo := NewActivityRepository(setupTestDB(t))

	created := seedRecord(t, repo, "김학생", "2024-03-05", "10:02", time.Date(2024, 3, 5, 10, 2, 17, 0, time.UTC))

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.UserName, got.UserName)
	require.Equal(t, 42, got.ChatDuration)
	require.Equal(t, "2024-03-05", got.ActivityDate)

	transcript, err := got.Transcript()
	require.NoError(t, err)
	require.Len(t, transcript, 2)
	require.Equal(t, models.EntryTypeUser, transcript[0].Type)
	require.Equal(t, "안녕하세요", transcript[0].Content)
}

func TestListAllNewestFirst(t *testing.T) {
	repo := NewActivityRepository(setupTestDB(t))

	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	seedRecord(t, repo, "첫번째", "2024-03-05", "09:00", base)
	seedRecord(t, repo, "두번째", "2024-03-05", "11:00", base.Add(2*time.Hour))
	seedRecord(t, repo, "세번째", "2024-03-06", "08:00", base.Add(23*time.Hour))

	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "세번째", records[0].UserName)
	require.Equal(t, "두번째", records[1].UserName)
	require.Equal(t, "첫번째", records[2].UserName)
}

func TestGetByIDMissingReturnsError(t *testing.T) {
	repo := NewActivityRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteRemovesRecord(t *testing.T) {
	repo := NewActivityRepository(setupTestDB(t))

	created := seedRecord(t, repo, "김학생", "2024-03-05", "10:02", time.Now())

	require.NoError(t, repo.Delete(context.Background(), created.ID))

	_, err := repo.GetByID(context.Background(), created.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// a second delete reports the miss, matching the detail endpoint
	require.ErrorIs(t, repo.Delete(context.Background(), created.ID), gorm.ErrRecordNotFound)
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	repo := NewActivityRepository(setupTestDB(t))

	require.ErrorIs(t, repo.Delete(context.Background(), 999), gorm.ErrRecordNotFound)
}
