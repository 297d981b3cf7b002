package main

import (
	"time"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo dataset: two authors, a few categories and locations,
// published and scheduled posts, and some comments.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Title: "Travel", Description: "Trips, routes and city walks", Slug: "travel", IsPublished: true},
		{Title: "Food", Description: "Recipes and restaurant notes", Slug: "food", IsPublished: true},
		{Title: "Drafts Corner", Description: "Hidden category for unfinished topics", Slug: "drafts-corner", IsPublished: false},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			record := cat
			if err := models.DB.Create(&record).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	locations := []models.Location{
		{Name: "Saint Petersburg", IsPublished: true},
		{Name: "Moscow", IsPublished: true},
	}
	for _, loc := range locations {
		var existing models.Location
		if err := models.DB.Where("name = ?", loc.Name).First(&existing).Error; err != nil {
			record := loc
			if err := models.DB.Create(&record).Error; err != nil {
				stdLog.Printf("Failed to create location %s: %v", loc.Name, err)
			} else {
				stdLog.Printf("Created location: %s", loc.Name)
			}
		} else {
			stdLog.Printf("Location already exists: %s", loc.Name)
		}
	}

	users := []struct {
		Username  string
		Email     string
		FirstName string
		LastName  string
		Password  string
	}{
		{Username: "alice", Email: "alice@example.com", FirstName: "Alice", LastName: "Writer", Password: "Demo-Pass-1"},
		{Username: "bob", Email: "bob@example.com", FirstName: "Bob", LastName: "Reader", Password: "Demo-Pass-2"},
	}
	userIDs := map[string]uint{}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("username = ?", u.Username).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", u.Username)
			userIDs[u.Username] = existing.ID
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", u.Username, err)
			continue
		}
		record := models.User{
			Username:     u.Username,
			Email:        u.Email,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			PasswordHash: string(hash),
		}
		if err := models.DB.Create(&record).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", u.Username, err)
			continue
		}
		stdLog.Printf("Created user: %s", u.Username)
		userIDs[u.Username] = record.ID
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"travel", "food", "drafts-corner"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	locationIDs := map[string]uint{}
	var locationList []models.Location
	if err := models.DB.Where("name IN ?", []string{"Saint Petersburg", "Moscow"}).Find(&locationList).Error; err != nil {
		stdLog.Printf("Failed to load locations: %v", err)
	}
	for _, loc := range locationList {
		locationIDs[loc.Name] = loc.ID
	}

	aliceID := userIDs["alice"]
	bobID := userIDs["bob"]
	if aliceID == 0 || bobID == 0 {
		stdLog.Fatalf("Seed users missing, aborting post seed")
	}

	now := time.Now()
	travelID := categoryIDs["travel"]
	foodID := categoryIDs["food"]
	hiddenID := categoryIDs["drafts-corner"]
	spbID := locationIDs["Saint Petersburg"]

	posts := []models.Post{
		{
			Title:       "A weekend on the canals",
			Text:        "Two days of walking along the Griboyedov and Moyka embankments.",
			PubDate:     now.Add(-72 * time.Hour),
			IsPublished: true,
			AuthorID:    aliceID,
			CategoryID:  &travelID,
			LocationID:  &spbID,
		},
		{
			Title:       "Five soups for a cold month",
			Text:        "Rassolnik, shchi and three more, with timings that actually work.",
			PubDate:     now.Add(-24 * time.Hour),
			IsPublished: true,
			AuthorID:    aliceID,
			CategoryID:  &foodID,
		},
		{
			Title:       "Scheduled: winter markets guide",
			Text:        "Goes live next week.",
			PubDate:     now.Add(168 * time.Hour),
			IsPublished: true,
			AuthorID:    aliceID,
			CategoryID:  &travelID,
		},
		{
			Title:       "Unlisted ramble",
			Text:        "Parked in the hidden category until it is ready.",
			PubDate:     now.Add(-48 * time.Hour),
			IsPublished: true,
			AuthorID:    bobID,
			CategoryID:  &hiddenID,
		},
	}
	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("title = ? AND author_id = ?", post.Title, post.AuthorID).First(&existing).Error; err == nil {
			stdLog.Printf("Post already exists: %s", post.Title)
			continue
		}
		record := post
		if err := models.DB.Create(&record).Error; err != nil {
			stdLog.Printf("Failed to create post %s: %v", post.Title, err)
			continue
		}
		stdLog.Printf("Created post: %s", post.Title)

		if record.Title == "A weekend on the canals" {
			comments := []models.Comment{
				{Text: "The Moyka stretch is my favourite too.", PostID: record.ID, AuthorID: bobID},
				{Text: "Adding this to my list for spring.", PostID: record.ID, AuthorID: aliceID},
			}
			for _, comment := range comments {
				c := comment
				if err := models.DB.Create(&c).Error; err != nil {
					stdLog.Printf("Failed to create comment: %v", err)
				}
			}
		}
	}

	stdLog.Printf("Seed finished")
}
