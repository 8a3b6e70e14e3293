package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"lexcircle-be/internal/entity"
	"lexcircle-be/internal/repository/specification"
	"lexcircle-be/internal/repository/unitofwork"
	"lexcircle-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ChatMessageRepository())
	assert.NotNil(t, uow.PresenceRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Chat Message Repository", func(t *testing.T) {
		count, err := uow.ChatMessageRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Chat message count: %d", count)
	})

	t.Run("Message Round Trip", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:       uuid.New(),
			Username: "it-" + uuid.New().String()[:8],
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		channel := "it-" + uuid.New().String()[:8]
		msg := &entity.ChatMessage{
			Channel:  channel,
			UserId:   user.Id,
			Username: user.Username,
			Body:     "integration ping",
		}
		err = uow.ChatMessageRepository().Create(ctx, msg)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, msg.Id)

		fetched, err := uow.ChatMessageRepository().FindAll(ctx,
			specification.ByChannel{Channel: channel},
			specification.OrderBy{Field: "created_at", Desc: true},
			specification.Limit{N: 10},
		)
		assert.NoError(t, err)
		if assert.Len(t, fetched, 1) {
			assert.Equal(t, "integration ping", fetched[0].Body)
			assert.Equal(t, user.Username, fetched[0].Username)
		}
	})

	t.Run("Presence Upsert Is One Row Per User", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:       uuid.New(),
			Username: "it-" + uuid.New().String()[:8],
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		repo := uow.PresenceRepository()
		err = repo.Upsert(ctx, &entity.PresenceRecord{
			UserId:   user.Id,
			Username: user.Username,
			LastSeen: time.Now().Add(-time.Minute),
		})
		assert.NoError(t, err)

		// Second heartbeat overwrites.
		err = repo.Upsert(ctx, &entity.PresenceRecord{
			UserId:   user.Id,
			Username: user.Username,
			LastSeen: time.Now(),
		})
		assert.NoError(t, err)

		count, err := repo.CountSeenSince(ctx, time.Now().Add(-30*time.Second))
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, count, int64(1))

		// Cleanup so repeated runs stay stable.
		assert.NoError(t, repo.Delete(ctx, user.Id))
	})
}
