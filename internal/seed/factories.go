// Package seed provides helpers to create demo and test data for the job
// board database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"jobboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control how much synthetic data Populate creates.
type Options struct {
	NumUsers        int
	JobsPerUser     int
	MaxAppsPerJob   int
	MaxDays         int
	DefaultPassword string
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
	hash string
}

// NewFactory creates a new Factory bound to db. A zero seed picks one from the clock.
func NewFactory(db *gorm.DB, opts Options, seed int64) (*Factory, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)

	if opts.MaxDays <= 0 {
		opts.MaxDays = 60
	}
	if opts.DefaultPassword == "" {
		opts.DefaultPassword = DemoPosterPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	return &Factory{
		db:   db,
		opts: opts,
		rnd:  rand.New(rand.NewSource(seed)),
		hash: string(hash),
	}, nil
}

// BuildUser constructs an unsaved user with a unique fake email.
func (f *Factory) BuildUser() *models.User {
	first, last := gofakeit.FirstName(), gofakeit.LastName()
	email := fmt.Sprintf("%s.%s.%d@example.com",
		strings.ToLower(first), strings.ToLower(last), gofakeit.Number(1000, 999999))
	return &models.User{
		Email:    email,
		Password: f.hash,
		Name:     first + " " + last,
		Role:     models.RoleUser,
	}
}

// BuildJob constructs an unsaved job that passes posting validation.
func (f *Factory) BuildJob(poster *models.User) *models.Job {
	title := fmt.Sprintf("%s %s", gofakeit.JobLevel(), gofakeit.JobTitle())
	if len(title) < 5 {
		title += " Role"
	}
	salary := fmt.Sprintf("PKR %d,000 - PKR %d,000", gofakeit.Number(60, 150), gofakeit.Number(151, 300))
	job := &models.Job{
		Title:        title,
		Company:      gofakeit.Company(),
		Location:     fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		JobType:      models.JobTypes[f.rnd.Intn(len(models.JobTypes))],
		Description:  gofakeit.Paragraph(1, 4, 12, " "),
		Requirements: strings.Join([]string{gofakeit.HackerNoun(), gofakeit.ProgrammingLanguage(), gofakeit.JobDescriptor(), "experience"}, ", "),
		SalaryRange:  &salary,
		CreatedAt:    f.pastTime(),
	}
	if poster != nil {
		id := poster.ID
		job.PostedBy = &id
	}
	return job
}

// BuildApplication constructs an unsaved application against job.
func (f *Factory) BuildApplication(job *models.Job) *models.Application {
	phone := gofakeit.Phone()
	return &models.Application{
		JobID:          job.ID,
		ApplicantName:  gofakeit.Name(),
		ApplicantEmail: strings.ToLower(gofakeit.Email()),
		ApplicantPhone: &phone,
		CoverLetter:    gofakeit.Paragraph(1, 3, 10, " "),
		Status:         models.ApplicationStatuses[f.rnd.Intn(len(models.ApplicationStatuses))],
		AppliedAt:      f.pastTime(),
	}
}

func (f *Factory) pastTime() time.Time {
	back := time.Duration(f.rnd.Intn(f.opts.MaxDays*24*60)) * time.Minute
	return time.Now().Add(-back)
}

// Result summarizes what Populate created.
type Result struct {
	Users        int
	Jobs         int
	Applications int
}

// Populate creates users, their jobs and applications according to the
// factory options, in one transaction.
func (f *Factory) Populate() (Result, error) {
	var res Result
	err := f.db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < f.opts.NumUsers; i++ {
			user := f.BuildUser()
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			res.Users++

			for j := 0; j < f.opts.JobsPerUser; j++ {
				job := f.BuildJob(user)
				if err := tx.Create(job).Error; err != nil {
					return fmt.Errorf("create job: %w", err)
				}
				res.Jobs++

				if f.opts.MaxAppsPerJob <= 0 {
					continue
				}
				for k := f.rnd.Intn(f.opts.MaxAppsPerJob + 1); k > 0; k-- {
					if err := tx.Create(f.BuildApplication(job)).Error; err != nil {
						return fmt.Errorf("create application: %w", err)
					}
					res.Applications++
				}
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	log.Printf("seeded %d users, %d jobs, %d applications", res.Users, res.Jobs, res.Applications)
	return res, nil
}

// ClearAll removes every application, job and user.
func ClearAll(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Application{}, &models.Job{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
