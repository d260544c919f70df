package seed

import (
	"fmt"
	"log"

	"kapipost/internal/models"

	"gorm.io/gorm"
)

// DefaultPassword is the password assigned to every seeded user.
const DefaultPassword = "password123!long"

// Options configuration for the seeder
type Options struct {
	NumUsers   int
	NumPosts   int
	MaxDays    int
	SkipBcrypt bool
}

// Built-in discussion groups created on every run.
var groupTitles = []string{
	"General", "Movies", "Music", "Television", "Gaming",
	"Fitness", "Hobbies", "Sports", "Technology",
	"Anime", "Books", "Food", "Travel", "Programming", "Linux",
	"Homelab", "Art", "History", "Philosophy", "Science",
	"Pets", "Finance", "Investing", "Startups",
}

// Seeder populates the database with demo users, groups, posts, comments
// and follow edges.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll removes every row the seeder might have produced.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE follows, comments, posts, groups, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Run executes the full seeding pass.
func (s *Seeder) Run() error {
	log.Printf("Seeding %d users and %d posts...", s.opts.NumUsers, s.opts.NumPosts)

	groups, err := s.createGroups()
	if err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	log.Printf("%d groups available", len(groups))

	users, err := s.createUsers(s.opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	posts, err := s.createPosts(users, groups, s.opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := s.createComments(users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}

	if err := s.createFollowMesh(users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

func (s *Seeder) createGroups() ([]*models.Group, error) {
	groups := make([]*models.Group, 0, len(groupTitles))
	for _, title := range groupTitles {
		group, err := s.factory.CreateGroup(title)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *Seeder) createUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a few fixed accounts so developers can log in.
	if count >= 3 {
		for _, name := range []string{"kapi", "demo", "test"} {
			name := name
			user, err := s.factory.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the OGs."
			})
			if err != nil {
				// Already present from an earlier run, not fatal.
				continue
			}
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}
	return users, nil
}

func (s *Seeder) createPosts(users []*models.User, groups []*models.Group, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	rng := s.factory.rng
	posts := make([]*models.Post, 0, count)

	for i := 0; i < count; i++ {
		author := users[rng.Intn(len(users))]

		// Roughly 60% of posts land in a group, the rest on profiles only.
		var group *models.Group
		if len(groups) > 0 && rng.Float32() < 0.6 {
			group = groups[rng.Intn(len(groups))]
		}

		posts = append(posts, s.factory.BuildPost(author, group))
	}

	// Insert in chunks to keep statement sizes sane on large runs.
	const chunk = 200
	for start := 0; start < len(posts); start += chunk {
		end := start + chunk
		if end > len(posts) {
			end = len(posts)
		}
		if err := s.factory.CreatePostsBatch(posts[start:end]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (s *Seeder) createComments(users []*models.User, posts []*models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}
	rng := s.factory.rng
	total := 0
	for _, post := range posts {
		for n := rng.Intn(4); n > 0; n-- {
			author := users[rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, post); err != nil {
				return err
			}
			total++
		}
	}
	log.Printf("%d comments created", total)
	return nil
}

func (s *Seeder) createFollowMesh(users []*models.User) error {
	rng := s.factory.rng
	total := 0
	for _, follower := range users {
		for n := rng.Intn(6); n > 0; n-- {
			author := users[rng.Intn(len(users))]
			if author.ID == follower.ID {
				continue
			}
			if err := s.factory.CreateFollow(follower, author); err != nil {
				return err
			}
			total++
		}
	}
	log.Printf("%d follow edges created", total)
	return nil
}
