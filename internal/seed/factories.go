// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"glimpse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUsers persists count users with a shared dev password. The first
// three are fixed accounts so local logins stay predictable across reseeds.
func (f *Factory) CreateUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	if count >= 3 {
		baseUsers := []string{"ada", "grace", "test"}
		for _, u := range baseUsers {
			user := models.User{
				Username: u,
				Email:    fmt.Sprintf("%s@example.com", u),
				Password: string(hashedPassword),
				Bio:      "One of the OGs.",
			}
			if err := f.db.Create(&user).Error; err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		username := f.generateUsername(i)
		user := models.User{
			Username:  username,
			Email:     fmt.Sprintf("%s@example.com", username),
			Password:  string(hashedPassword),
			Bio:       fakeBio(),
			CreatedAt: spreadBack(f.r, 365),
		}
		if err := f.db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", username, err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func (f *Factory) generateUsername(n int) string {
	first := strings.ToLower(gofakeit.FirstName())
	last := strings.ToLower(gofakeit.LastName())
	formats := []string{"%s%s", "%s.%s", "%s_%s"}
	base := fmt.Sprintf(formats[f.r.Intn(len(formats))], first, last)
	// Suffix keeps usernames unique without a retry loop
	return fmt.Sprintf("%s%d", base, n)
}

// CreateFollowMesh gives every user a random set of people to follow, so
// feeds and follower lists are populated.
func (f *Factory) CreateFollowMesh(users []models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range users {
		targets := f.r.Intn(len(users)/2 + 1)
		seen := map[uint]bool{follower.ID: true}
		for t := 0; t < targets; t++ {
			target := users[f.r.Intn(len(users))]
			if seen[target.ID] {
				continue
			}
			seen[target.ID] = true

			edge := models.Follow{
				FollowerID: follower.ID,
				FolloweeID: target.ID,
				CreatedAt:  spreadBack(f.r, 180),
			}
			if err := f.db.Create(&edge).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// CreatePosts persists count posts spread across the given users. Roughly a
// third carry a stock image URL.
func (f *Factory) CreatePosts(users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[f.r.Intn(len(users))]

		post := models.Post{
			UserID:    user.ID,
			Text:      fakePostText(f.r),
			CreatedAt: spreadBack(f.r, 90),
		}
		if f.r.Float32() < 0.35 {
			post.Image = fmt.Sprintf("https://picsum.photos/seed/%d/800/800", f.r.Intn(10000))
		}

		if err := f.db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

// CreateEngagement sprinkles likes and comments across the given posts.
// Likes respect the one-per-user constraint.
func (f *Factory) CreateEngagement(users []models.User, posts []models.Post) (likes, comments int, err error) {
	if len(users) == 0 || len(posts) == 0 {
		return 0, 0, nil
	}

	for _, post := range posts {
		likers := f.r.Intn(len(users)/2 + 1)
		seen := map[uint]bool{}
		for l := 0; l < likers; l++ {
			user := users[f.r.Intn(len(users))]
			if seen[user.ID] {
				continue
			}
			seen[user.ID] = true
			if err := f.db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error; err != nil {
				return likes, comments, err
			}
			likes++
		}

		for c := 0; c < f.r.Intn(4); c++ {
			user := users[f.r.Intn(len(users))]
			comment := models.Comment{
				PostID:    post.ID,
				UserID:    user.ID,
				Text:      gofakeit.Sentence(f.r.Intn(10) + 3),
				CreatedAt: post.CreatedAt.Add(time.Duration(f.r.Intn(48)) * time.Hour),
			}
			if err := f.db.Create(&comment).Error; err != nil {
				return likes, comments, err
			}
			comments++
		}
	}

	return likes, comments, nil
}

// CreateChatThreads starts short back-and-forth threads between random user
// pairs.
func (f *Factory) CreateChatThreads(users []models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	threads := len(users) / 2
	for t := 0; t < threads; t++ {
		a := users[f.r.Intn(len(users))]
		b := users[f.r.Intn(len(users))]
		if a.ID == b.ID {
			continue
		}

		start := spreadBack(f.r, 30)
		length := f.r.Intn(6) + 2
		for m := 0; m < length; m++ {
			sender, recipient := a, b
			if m%2 == 1 {
				sender, recipient = b, a
			}
			msg := models.Message{
				SenderID:    sender.ID,
				RecipientID: recipient.ID,
				Content:     gofakeit.Sentence(f.r.Intn(8) + 2),
				CreatedAt:   start.Add(time.Duration(m) * time.Minute),
			}
			if err := f.db.Create(&msg).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
