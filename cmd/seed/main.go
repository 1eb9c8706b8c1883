package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkpress/internal/config"
	"inkpress/internal/db"
	"inkpress/internal/model"
	"inkpress/internal/repository"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Avatar   string
}

type seedPost struct {
	Title       string
	Category    model.Category
	Description string
	Thumbnail   string
	AuthorEmail string
}

var demoUsers = []seedUser{
	{Name: "Ada Writer", Email: "ada@example.com", Password: "secret1", Avatar: "https://i.pravatar.cc/150?img=1"},
	{Name: "Ben Blogger", Email: "ben@example.com", Password: "secret2", Avatar: "https://i.pravatar.cc/150?img=2"},
	{Name: "Cleo Critic", Email: "cleo@example.com", Password: "secret3", Avatar: "https://i.pravatar.cc/150?img=3"},
}

var demoPosts = []seedPost{
	{Title: "A week in Lisbon", Category: model.CategoryTravel, Description: "<p>Seven days of trams, tiles and pastel de nata.</p>", Thumbnail: "https://picsum.photos/seed/lisbon/600/400", AuthorEmail: "ada@example.com"},
	{Title: "Sourdough for beginners", Category: model.CategoryFood, Description: "<p>A starter guide that actually starts.</p>", Thumbnail: "https://picsum.photos/seed/bread/600/400", AuthorEmail: "ada@example.com"},
	{Title: "Couch to 10k", Category: model.CategoryFitness, Description: "<p>The plan I wish someone had given me.</p>", Thumbnail: "https://picsum.photos/seed/run/600/400", AuthorEmail: "ben@example.com"},
	{Title: "Shooting film in 2026", Category: model.CategoryPhotography, Description: "<p>Why grain still beats megapixels for portraits.</p>", Thumbnail: "https://picsum.photos/seed/film/600/400", AuthorEmail: "ben@example.com"},
	{Title: "Five novels that rewired me", Category: model.CategoryBook, Description: "<p>Reading list for a long winter.</p>", Thumbnail: "https://picsum.photos/seed/books/600/400", AuthorEmail: "cleo@example.com"},
	{Title: "Learning piano as an adult", Category: model.CategoryMusic, Description: "<p>Progress notes from month one to month twelve.</p>", Thumbnail: "https://picsum.photos/seed/piano/600/400", AuthorEmail: "cleo@example.com"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	posts := repository.NewPostRepository(gormDB)

	idByEmail := make(map[string]uint, len(demoUsers))
	created := 0
	for _, du := range demoUsers {
		existing, err := users.FindByEmail(ctx, du.Email)
		if err == nil {
			idByEmail[du.Email] = existing.ID
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check user %s: %v", du.Email, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(du.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{
			Name:         du.Name,
			Email:        du.Email,
			PasswordHash: string(hashed),
			Avatar:       du.Avatar,
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", du.Email, err)
		}
		idByEmail[du.Email] = user.ID
		created++
	}
	log.Printf("Users: %d created, %d already present", created, len(demoUsers)-created)

	created = 0
	for _, dp := range demoPosts {
		creatorID, ok := idByEmail[dp.AuthorEmail]
		if !ok {
			log.Fatalf("Unknown author %s for post %q", dp.AuthorEmail, dp.Title)
		}
		post := &model.Post{
			Title:       dp.Title,
			Category:    dp.Category,
			Description: dp.Description,
			Thumbnail:   dp.Thumbnail,
			CreatorID:   creatorID,
		}
		if err := posts.Create(ctx, post); err != nil {
			log.Fatalf("Failed to create post %q: %v", dp.Title, err)
		}
		created++
	}
	log.Printf("Posts: %d created", created)

	log.Println("Seed completed")
}
