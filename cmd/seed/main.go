package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ttms-admin-api/internal/models"
	"github.com/noah-isme/ttms-admin-api/internal/repository"
	"github.com/noah-isme/ttms-admin-api/pkg/config"
	"github.com/noah-isme/ttms-admin-api/pkg/database"
	"github.com/noah-isme/ttms-admin-api/pkg/logger"
)

var (
	campusNames  = []string{"Main Campus", "North Campus", "Coastal Campus"}
	collegeNames = []string{"College of Engineering", "College of Agriculture", "College of Education", "College of Health Sciences"}
	categories   = []string{"Research", "Extension", "Technology Transfer", "Capacity Building"}
	levels       = []string{"Local", "Regional", "National", "International"}
	modalityKind = []string{"TV", "Radio", "Online"}
)

type seeder struct {
	db    *sqlx.DB
	rng   *rand.Rand
	now   time.Time
	bar   *progressbar.ProgressBar
	users []string
	pairs []string
}

func main() {
	adminEmail := flag.String("admin-email", "admin@example.edu", "email of the seeded administrator")
	adminPassword := flag.String("admin-password", "password", "password of the seeded administrator")
	records := flag.Int("records", 50, "records to create per report")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	ctx := context.Background()
	s := &seeder{db: db, rng: rand.New(rand.NewSource(*seed)), now: time.Now().UTC()}

	if err := s.campusColleges(ctx); err != nil {
		logr.Fatal("seed campuses", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logr.Fatal("hash admin password", zap.Error(err))
	}
	admin := &models.User{FirstName: "System", LastName: "Administrator", Email: *adminEmail, PasswordHash: string(hash), UserType: models.UserTypeAdmin}
	if err := repository.NewUserRepository(db).Create(ctx, admin); err != nil {
		logr.Fatal("seed admin", zap.Error(err))
	}
	s.users = append(s.users, admin.ID)

	s.bar = progressbar.NewOptions(*records*6,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("seeding reports"),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)

	steps := []func(context.Context, int) error{s.projects, s.awards, s.partners, s.resolutions}
	for _, step := range steps {
		if err := step(ctx, *records); err != nil {
			logr.Fatal("seed reports", zap.Error(err))
		}
	}
	if err := s.projectChildren(ctx, *records); err != nil {
		logr.Fatal("seed project children", zap.Error(err))
	}
	logr.Info("seed complete", zap.String("admin", *adminEmail), zap.Int("records", *records))
}

func (s *seeder) campusColleges(ctx context.Context) error {
	collegeIDs := make([]string, 0, len(collegeNames))
	for _, name := range collegeNames {
		id := uuid.NewString()
		if _, err := s.db.ExecContext(ctx, `INSERT INTO colleges (id, name) VALUES ($1, $2)`, id, name); err != nil {
			return fmt.Errorf("insert college: %w", err)
		}
		collegeIDs = append(collegeIDs, id)
	}
	for i, name := range campusNames {
		campusID := uuid.NewString()
		if _, err := s.db.ExecContext(ctx, `INSERT INTO campuses (id, name) VALUES ($1, $2)`, campusID, name); err != nil {
			return fmt.Errorf("insert campus: %w", err)
		}
		// every campus offers all but one college
		for j, collegeID := range collegeIDs {
			if j == i {
				continue
			}
			id := uuid.NewString()
			if _, err := s.db.ExecContext(ctx, `INSERT INTO campus_colleges (id, campus_id, college_id) VALUES ($1, $2, $3)`, id, campusID, collegeID); err != nil {
				return fmt.Errorf("insert campus college: %w", err)
			}
			s.pairs = append(s.pairs, id)
		}
	}
	return nil
}

func (s *seeder) pick(values []string) string {
	return values[s.rng.Intn(len(values))]
}

func (s *seeder) day(offsetDays int) time.Time {
	return s.now.AddDate(0, 0, offsetDays).Truncate(24 * time.Hour)
}

func (s *seeder) exec(ctx context.Context, query string, args ...interface{}) error {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return s.bar.Add(1)
}

func (s *seeder) projects(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		start := s.day(-s.rng.Intn(365))
		err := s.exec(ctx, `INSERT INTO projects (id, name, description, leader, members, agency_partner, category, start_date, end_date, campus_college_id, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			uuid.NewString(), fmt.Sprintf("Project %03d", i+1), "<p>Community technology project</p>", "Dr. Santos", "Reyes, Cruz",
			"Department of Science and Technology", s.pick(categories), start, start.AddDate(0, 6, 0), s.pick(s.pairs), s.pick(s.users))
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
	}
	return nil
}

func (s *seeder) awards(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		err := s.exec(ctx, `INSERT INTO awards (id, award_name, description, awarding_body, people_involved, level, date_received, campus_college_id, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.NewString(), fmt.Sprintf("Innovation Award %03d", i+1), "Recognition for applied research", "Commission on Higher Education",
			"Research team", s.pick(levels), s.day(-s.rng.Intn(365)), s.pick(s.pairs), s.pick(s.users))
		if err != nil {
			return fmt.Errorf("insert award: %w", err)
		}
	}
	return nil
}

func (s *seeder) partners(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		start := s.day(-s.rng.Intn(365))
		err := s.exec(ctx, `INSERT INTO international_partners (id, agency_partner, location, activity_conducted, narrative, start_date, end_date, number_of_participants, number_of_committee, campus_college_id, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			uuid.NewString(), fmt.Sprintf("Partner University %03d", i+1), "Tokyo, Japan", "Faculty exchange", "Joint workshop",
			start, start.AddDate(0, 0, 5), 10+s.rng.Intn(190), 1+s.rng.Intn(20), s.pick(s.pairs), s.pick(s.users))
		if err != nil {
			return fmt.Errorf("insert partner: %w", err)
		}
	}
	return nil
}

func (s *seeder) resolutions(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		effectivity := s.day(-s.rng.Intn(400) + 60)
		err := s.exec(ctx, `INSERT INTO resolutions (id, resolution_number, partner_agency, description, year_of_effectivity, expiration, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), fmt.Sprintf("RES-%04d", i+1), "Provincial Government", "Memorandum of agreement",
			effectivity, effectivity.AddDate(0, 0, 30+s.rng.Intn(365)), s.pick(s.users))
		if err != nil {
			return fmt.Errorf("insert resolution: %w", err)
		}
	}
	return nil
}

func (s *seeder) projectChildren(ctx context.Context, n int) error {
	var projectIDs []string
	if err := s.db.SelectContext(ctx, &projectIDs, `SELECT id FROM projects`); err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	if len(projectIDs) == 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		err := s.exec(ctx, `INSERT INTO modalities (id, project_id, modality, tv_channel, radio, online_link, time_air, period, partner_agency, hosted_by, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			uuid.NewString(), s.pick(projectIDs), s.pick(modalityKind), "Channel 5", "DZRH", "https://example.edu/live",
			"08:00 AM", "Weekly", "Regional Office", "Extension Office", s.pick(s.users))
		if err != nil {
			return fmt.Errorf("insert modality: %w", err)
		}
	}
	for i := 0; i < n; i++ {
		err := s.exec(ctx, `INSERT INTO impact_assessments (id, project_id, beneficiary, geographic_coverage, num_direct_beneficiary, num_indirect_beneficiary, user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), s.pick(projectIDs), "Farmers cooperative", "Province", 20+s.rng.Intn(500), 100+s.rng.Intn(5000), s.pick(s.users))
		if err != nil {
			return fmt.Errorf("insert impact assessment: %w", err)
		}
	}
	return nil
}
