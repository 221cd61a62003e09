package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"diary-backend/internal/config"
	infraDB "diary-backend/internal/infrastructure/database"
	"diary-backend/pkg/database"
)

// Seeds a small but fully linked corpus: one license, two users with one
// pseudonym each, a three-chapter sequence, and a handful of stories
// inspired by its opening chapter. Everything is written in a single
// transaction so a partial seed never survives.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load database config: %v", err)
	}
	db := infraDB.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	var stories, inspired int
	err = database.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
		stories, inspired, err = seed(ctx, tx)
		return err
	})
	if err != nil {
		log.Fatalf("❌ Seed failed: %v", err)
	}

	log.Printf("✅ Seed complete: %d stories (%d inspired offshoots)", stories, inspired)
}

func seed(ctx context.Context, tx pgx.Tx) (int, int, error) {
	now := time.Now().UTC()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return 0, 0, err
	}

	chronicler, err := insertUser(ctx, tx, "chronicler", hash)
	if err != nil {
		return 0, 0, err
	}
	wanderer, err := insertUser(ctx, tx, "wanderer", hash)
	if err != nil {
		return 0, 0, err
	}

	var licenseID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO licenses (name, text, owner_id, published_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		"CC BY-SA 4.0", "Attribution-ShareAlike 4.0 International", chronicler, now,
	).Scan(&licenseID)
	if err != nil {
		return 0, 0, err
	}

	firstPen, err := insertAuthor(ctx, tx, chronicler, "The Chronicler", "Keeper of *long* stories.")
	if err != nil {
		return 0, 0, err
	}
	secondPen, err := insertAuthor(ctx, tx, wanderer, "Night Wanderer", "Writes after midnight.")
	if err != nil {
		return 0, 0, err
	}

	// A three-chapter sequence by one author, each chapter published a
	// day after its predecessor.
	var prev *uuid.UUID
	var opening uuid.UUID
	for i := 0; i < 3; i++ {
		publishedAt := now.Add(time.Duration(i-3) * 24 * time.Hour)
		id, err := insertStory(ctx, tx, storyRow{
			authorID:     firstPen,
			title:        fmt.Sprintf("The Long Road, Chapter %d", i+1),
			tagline:      "A journey in three parts",
			text:         fmt.Sprintf("## Chapter %d\n\nThe road went ever on.", i+1),
			licenseID:    &licenseID,
			publishedAt:  &publishedAt,
			precededByID: prev,
		})
		if err != nil {
			return 0, 0, err
		}
		if i == 0 {
			opening = id
		}
		prev = &id
	}

	// Offshoots by the second pseudonym, inspired by the opening chapter.
	inspired := 0
	for i := 0; i < 7; i++ {
		publishedAt := now.Add(time.Duration(-i) * time.Hour)
		_, err := insertStory(ctx, tx, storyRow{
			authorID:    secondPen,
			title:       fmt.Sprintf("Roadside Tale %d", i+1),
			tagline:     "Found along the way",
			text:        "A short detour from the long road.",
			publishedAt: &publishedAt,
			inspiredBy:  &opening,
		})
		if err != nil {
			return 0, 0, err
		}
		inspired++
	}

	// One private draft so the placeholder path has something to show.
	if _, err := insertStory(ctx, tx, storyRow{
		authorID: firstPen,
		title:    "Unfinished Business",
		tagline:  "Not ready yet",
		text:     "Draft notes, not for anyone else.",
	}); err != nil {
		return 0, 0, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO entries (author_id, title, text, published_at)
		VALUES ($1, $2, $3, $4)`,
		secondPen, "First night out", "Slept under the stars. **Cold.**", now,
	); err != nil {
		return 0, 0, err
	}

	return 3 + inspired + 1, inspired, nil
}

func insertUser(ctx context.Context, tx pgx.Tx, username string, hash []byte) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id`,
		username, username+"@example.com", string(hash),
	).Scan(&id)
	return id, err
}

func insertAuthor(ctx context.Context, tx pgx.Tx, userID uuid.UUID, name, bio string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO authors (user_id, name, bio_text)
		VALUES ($1, $2, $3)
		RETURNING id`,
		userID, name, bio,
	).Scan(&id)
	return id, err
}

type storyRow struct {
	authorID     uuid.UUID
	title        string
	tagline      string
	text         string
	licenseID    *uuid.UUID
	publishedAt  *time.Time
	inspiredBy   *uuid.UUID
	precededByID *uuid.UUID
}

func insertStory(ctx context.Context, tx pgx.Tx, row storyRow) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO stories (author_id, title, tagline, text, license_id,
			published_at, inspired_by_id, preceded_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		row.authorID, row.title, row.tagline, row.text, row.licenseID,
		row.publishedAt, row.inspiredBy, row.precededByID,
	).Scan(&id)
	return id, err
}
