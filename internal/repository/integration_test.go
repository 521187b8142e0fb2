package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"warbler/internal/database"
	"warbler/internal/model"
	"warbler/internal/repository"
	"warbler/internal/service"
)

// These tests run against a real Postgres instance and verify the behavior
// the schema itself enforces: cascading deletes, the unique constraint on the
// normalized thread pair, and unique-violation translation. They are skipped
// unless TEST_DATABASE_URL points at a database safe to write to.

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database integration tests")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// createTestUser inserts a user with a unique username/email so tests can
// share a database, and removes it again on cleanup.
func createTestUser(t *testing.T, repo repository.UserRepository, prefix string) *model.User {
	t.Helper()

	suffix := uuid.New().String()[:8]
	u := &model.User{
		Username:       prefix + "_" + suffix,
		Email:          prefix + "_" + suffix + "@example.com",
		PasswordHashed: "not-a-real-hash",
		ImageURL:       model.DefaultImageURL,
		HeaderImageURL: model.DefaultHeaderImageURL,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create test user %s: %v", u.Username, err)
	}
	t.Cleanup(func() {
		// Already gone when the test deleted it itself.
		_ = repo.Delete(context.Background(), u.ID)
	})
	return u
}

func TestUserDeleteCascades(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	threadRepo := repository.NewThreadRepository(db)

	alice := createTestUser(t, userRepo, "cascade_alice")
	bob := createTestUser(t, userRepo, "cascade_bob")

	// Build one row of everything hanging off Alice.
	if _, err := followRepo.Create(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("create follow: %v", err)
	}
	msg, err := messageRepo.Create(ctx, alice.ID, "soon to be cascaded")
	if err != nil {
		t.Fatalf("create message: %v", err)
	}
	err = reactionRepo.Create(ctx, model.Reaction{
		UserID: bob.ID, MessageID: msg.ID, ReactionType: model.ReactionSmile,
	})
	if err != nil {
		t.Fatalf("create reaction: %v", err)
	}
	u1, u2 := model.NormalizePair(alice.ID, bob.ID)
	thread, err := threadRepo.GetOrCreate(ctx, u1, u2)
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}
	if _, err := threadRepo.CreateDM(ctx, thread.ID, alice.ID, "hello"); err != nil {
		t.Fatalf("create dm: %v", err)
	}

	if err := userRepo.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := messageRepo.GetByID(ctx, msg.ID); !errors.Is(err, model.ErrMessageNotFound) {
		t.Errorf("message after cascade: error = %v, want ErrMessageNotFound", err)
	}
	if exists, err := followRepo.Exists(ctx, bob.ID, alice.ID); err != nil || exists {
		t.Errorf("follow edge after cascade: exists = %v, err = %v", exists, err)
	}
	if _, err := threadRepo.GetByID(ctx, thread.ID); !errors.Is(err, model.ErrThreadNotFound) {
		t.Errorf("thread after cascade: error = %v, want ErrThreadNotFound", err)
	}

	var reactions int
	if err := db.GetContext(ctx, &reactions,
		`SELECT COUNT(*) FROM reactions WHERE message_id = $1`, msg.ID); err != nil {
		t.Fatalf("count reactions: %v", err)
	}
	if reactions != 0 {
		t.Errorf("reactions after cascade = %d, want 0", reactions)
	}

	var dms int
	if err := db.GetContext(ctx, &dms,
		`SELECT COUNT(*) FROM dms WHERE thread_id = $1`, thread.ID); err != nil {
		t.Fatalf("count dms: %v", err)
	}
	if dms != 0 {
		t.Errorf("dms after cascade = %d, want 0", dms)
	}
}

func TestThreadPairUniqueInStorage(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	threadService := service.NewThreadService(threadRepo, userRepo)

	alice := createTestUser(t, userRepo, "thread_alice")
	bob := createTestUser(t, userRepo, "thread_bob")

	// Opening the thread from either side resolves to the same row.
	a, err := threadService.GetOrCreate(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetOrCreate(alice, bob) error = %v", err)
	}
	b, err := threadService.GetOrCreate(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetOrCreate(bob, alice) error = %v", err)
	}
	if a.ID != b.ID {
		t.Errorf("thread ids differ: %d vs %d", a.ID, b.ID)
	}

	// A repeated insert for the same pair hits the conflict path and returns
	// the existing row instead of creating another.
	u1, u2 := model.NormalizePair(alice.ID, bob.ID)
	again, err := threadRepo.GetOrCreate(ctx, u1, u2)
	if err != nil {
		t.Fatalf("repeated GetOrCreate error = %v", err)
	}
	if again.ID != a.ID {
		t.Errorf("repeated GetOrCreate id = %d, want %d", again.ID, a.ID)
	}

	var count int
	if err := db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM threads WHERE user1_id = $1 AND user2_id = $2`, u1, u2); err != nil {
		t.Fatalf("count threads: %v", err)
	}
	if count != 1 {
		t.Errorf("thread rows for pair = %d, want 1", count)
	}
}

func TestUserUniqueViolationTranslation(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	alice := createTestUser(t, userRepo, "unique_alice")

	dupUsername := &model.User{
		Username:       alice.Username,
		Email:          "other_" + alice.Email,
		PasswordHashed: "not-a-real-hash",
		ImageURL:       model.DefaultImageURL,
		HeaderImageURL: model.DefaultHeaderImageURL,
	}
	if err := userRepo.Create(ctx, dupUsername); !errors.Is(err, model.ErrUsernameExists) {
		t.Errorf("duplicate username: error = %v, want ErrUsernameExists", err)
	}

	dupEmail := &model.User{
		Username:       "other_" + alice.Username,
		Email:          alice.Email,
		PasswordHashed: "not-a-real-hash",
		ImageURL:       model.DefaultImageURL,
		HeaderImageURL: model.DefaultHeaderImageURL,
	}
	if err := userRepo.Create(ctx, dupEmail); !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("duplicate email: error = %v, want ErrEmailExists", err)
	}
}

func TestReactionDuplicateInStorage(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	alice := createTestUser(t, userRepo, "react_alice")
	msg, err := messageRepo.Create(ctx, alice.ID, "react to me")
	if err != nil {
		t.Fatalf("create message: %v", err)
	}

	reaction := model.Reaction{UserID: alice.ID, MessageID: msg.ID, ReactionType: model.ReactionLaugh}
	if err := reactionRepo.Create(ctx, reaction); err != nil {
		t.Fatalf("first reaction: %v", err)
	}
	if err := reactionRepo.Create(ctx, reaction); !errors.Is(err, model.ErrAlreadyReacted) {
		t.Errorf("second reaction: error = %v, want ErrAlreadyReacted", err)
	}

	// Same message, different type is a distinct row.
	reaction.ReactionType = model.ReactionSad
	if err := reactionRepo.Create(ctx, reaction); err != nil {
		t.Errorf("different type: error = %v", err)
	}
}

func TestFollowDuplicateEdgeInStorage(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)

	alice := createTestUser(t, userRepo, "edge_alice")
	bob := createTestUser(t, userRepo, "edge_bob")

	inserted, err := followRepo.Create(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("first follow: %v", err)
	}
	if !inserted {
		t.Fatal("first follow reported as duplicate")
	}

	inserted, err = followRepo.Create(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("second follow: %v", err)
	}
	if inserted {
		t.Error("duplicate follow reported as inserted")
	}
}
