package seed

import (
	"errors"
	"fmt"

	"jobboard/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Demo poster account that owns the built-in listings.
const (
	DemoPosterEmail    = "poster@example.com"
	DemoPosterPassword = "password123"
	DemoPosterName     = "Job Poster"
)

// DemoJob is a built-in listing.
type DemoJob struct {
	Title        string
	Company      string
	Location     string
	JobType      string
	Description  string
	Requirements string
	SalaryRange  string
}

// OdooJobs are the listings shipped with the demo board.
var OdooJobs = []DemoJob{
	{
		Title:        "Senior Odoo Developer",
		Company:      "TechSolutions Pakistan",
		Location:     "Lahore, Pakistan",
		JobType:      models.JobTypeRemote,
		Description:  "We are looking for an experienced Senior Odoo Developer to join our dynamic team. You will be responsible for developing, customizing, and maintaining Odoo ERP modules, building custom modules, integrating third-party applications and optimizing Odoo performance.",
		Requirements: "4+ years of Odoo development experience, Python, PostgreSQL, XML, JavaScript, OWL Framework, REST API, Git, experience with Odoo 14+",
		SalaryRange:  "PKR 150,000 - PKR 250,000",
	},
	{
		Title:        "Odoo Developer",
		Company:      "ERP Innovations Ltd",
		Location:     "Lahore, Pakistan",
		JobType:      models.JobTypeOnsite,
		Description:  "Join our team as an Odoo Developer and work on ERP implementation projects. You will customize Odoo modules to client requirements, develop new features, debug issues and provide technical support alongside cross-functional teams.",
		Requirements: "2+ years of Odoo development, Python, PostgreSQL, XML/JSON, JavaScript, Odoo framework knowledge, good communication skills",
		SalaryRange:  "PKR 100,000 - PKR 180,000",
	},
	{
		Title:        "Odoo ERP Developer",
		Company:      "Digital Business Systems",
		Location:     "Lahore, Pakistan",
		JobType:      models.JobTypeRemote,
		Description:  "We are seeking a skilled Odoo ERP Developer to develop and customize Odoo applications for our clients. You will work on module development, workflow automation, report generation and system integration.",
		Requirements: "3+ years of Odoo development experience, Python, PostgreSQL, Odoo module development, XML, JavaScript, API integration",
		SalaryRange:  "PKR 120,000 - PKR 200,000",
	},
	{
		Title:        "Junior Odoo Developer",
		Company:      "CloudTech Solutions",
		Location:     "Lahore, Pakistan",
		JobType:      models.JobTypeOnsite,
		Description:  "An opportunity for a Junior Odoo Developer to start a career in ERP development. You will learn the Odoo framework under senior developers, build basic modules, fix bugs and assist in client implementations.",
		Requirements: "1+ year of Python development, basic Odoo knowledge, PostgreSQL basics, XML/HTML, JavaScript fundamentals",
		SalaryRange:  "PKR 60,000 - PKR 100,000",
	},
	{
		Title:        "Odoo Full Stack Developer",
		Company:      "InnovateERP",
		Location:     "Lahore, Pakistan",
		JobType:      models.JobTypeHybrid,
		Description:  "We need an Odoo Full Stack Developer for both backend and frontend work on Odoo applications: custom modules, OWL user interfaces, API integrations and database query tuning.",
		Requirements: "3+ years of full-stack development, Odoo framework expertise, Python, PostgreSQL, JavaScript, OWL Framework, REST/XML-RPC APIs, Git",
		SalaryRange:  "PKR 130,000 - PKR 220,000",
	},
	{
		Title:        "Odoo Technical Consultant",
		Company:      "Business Automation Experts",
		Location:     "Lahore, Pakistan",
		JobType:      models.JobTypeRemote,
		Description:  "Join us as an Odoo Technical Consultant working on client implementations. You will gather business requirements, provide technical guidance and turn them into custom solutions on the Odoo platform.",
		Requirements: "4+ years of Odoo experience, Python development, PostgreSQL, Odoo module customization, client communication skills, Odoo certification preferred",
		SalaryRange:  "PKR 160,000 - PKR 280,000",
	},
	{
		Title:        "Odoo Developer - E-commerce Specialist",
		Company:      "E-Commerce Solutions Pakistan",
		Location:     "Lahore, Pakistan",
		JobType:      models.JobTypeOnsite,
		Description:  "We are looking for an Odoo Developer specialized in e-commerce modules: payment gateway integration, product catalog customization, shopping cart features and online store performance.",
		Requirements: "3+ years of Odoo development, e-commerce module experience, Python, PostgreSQL, payment gateway integration, Odoo website builder",
		SalaryRange:  "PKR 140,000 - PKR 230,000",
	},
	{
		Title:        "Odoo Developer - Manufacturing Module",
		Company:      "Industrial ERP Solutions",
		Location:     "Lahore, Pakistan",
		JobType:      models.JobTypeRemote,
		Description:  "Seeking an Odoo Developer with expertise in manufacturing and inventory modules. You will customize manufacturing workflows, build production planning features and optimize inventory management.",
		Requirements: "3+ years of Odoo development, manufacturing module experience, Python, PostgreSQL, inventory management, BOM expertise",
		SalaryRange:  "PKR 145,000 - PKR 240,000",
	},
}

// DemoJobs ensures the demo poster exists and owns every OdooJobs listing.
// Listings already present (same title and company) are skipped. It returns
// the number of jobs created.
func DemoJobs(db *gorm.DB) (int, error) {
	poster, err := ensureDemoPoster(db)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, item := range OdooJobs {
		var existing models.Job
		err := db.Where("title = ? AND company = ?", item.Title, item.Company).First(&existing).Error
		switch {
		case err == nil:
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return created, fmt.Errorf("lookup job %q: %w", item.Title, err)
		}

		salary := item.SalaryRange
		posterID := poster.ID
		job := models.Job{
			Title:        item.Title,
			Company:      item.Company,
			Location:     item.Location,
			JobType:      item.JobType,
			Description:  item.Description,
			Requirements: item.Requirements,
			SalaryRange:  &salary,
			PostedBy:     &posterID,
		}
		if err := db.Create(&job).Error; err != nil {
			return created, fmt.Errorf("create job %q: %w", item.Title, err)
		}
		created++
	}
	return created, nil
}

func ensureDemoPoster(db *gorm.DB) (*models.User, error) {
	var poster models.User
	err := db.Where("email = ?", DemoPosterEmail).First(&poster).Error
	if err == nil {
		return &poster, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup demo poster: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPosterPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	poster = models.User{
		Email:    DemoPosterEmail,
		Password: string(hash),
		Name:     DemoPosterName,
		Role:     models.RoleUser,
	}
	if err := db.Create(&poster).Error; err != nil {
		return nil, fmt.Errorf("create demo poster: %w", err)
	}
	return &poster, nil
}
