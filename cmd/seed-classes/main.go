package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/stemsi/coursehub-backend/internal/config"
	"github.com/stemsi/coursehub-backend/internal/database"
	"github.com/stemsi/coursehub-backend/internal/logger"
	"github.com/stemsi/coursehub-backend/internal/model"
	"github.com/stemsi/coursehub-backend/internal/repository"
	"github.com/stemsi/coursehub-backend/internal/service"
)

func main() {
	var (
		instructorEmail string
		instructorName  string
		seats           int
		approve         bool
	)
	flag.StringVar(&instructorEmail, "email", "instructor@coursehub.local", "Instructor email")
	flag.StringVar(&instructorName, "name", "Demo Instructor", "Instructor name")
	flag.IntVar(&seats, "seats", 20, "Seats per class")
	flag.BoolVar(&approve, "approve", true, "Publish seeded classes immediately")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	classRepo := repository.NewClassRepository(pool)

	userService := service.NewUserService(userRepo)
	classService := service.NewClassService(classRepo)

	fmt.Println("=== Seeding Demo Classes ===")

	// Ensure the instructor account exists.
	instructor, err := userService.Create(ctx, model.CreateUserRequest{Name: instructorName, Email: instructorEmail})
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		instructor, err = userService.GetByEmail(ctx, instructorEmail)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load existing instructor")
		}
		fmt.Printf("Found existing user %s\n", instructor.Email)
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to create instructor")
	default:
		fmt.Printf("Created user %s\n", instructor.Email)
	}

	if _, err := userService.Promote(ctx, instructor.ID, model.RoleInstructor); err != nil {
		log.Fatal().Err(err).Msg("Failed to promote instructor")
	}

	catalog := []struct {
		name  string
		price float64
	}{
		{"Introduction to Go", 49.99},
		{"Concurrency Patterns", 79.00},
		{"PostgreSQL for Developers", 59.50},
		{"Building REST APIs", 39.99},
		{"Distributed Systems Basics", 99.00},
		{"Testing in Practice", 29.00},
		{"Cloud Deployment", 69.00},
		{"Data Modelling", 45.00},
	}

	status := model.ClassStatusPending
	if approve {
		status = model.ClassStatusApproved
	}

	successCount := 0
	for _, item := range catalog {
		class, err := classService.Create(ctx, model.CreateClassRequest{
			Name:            item.name,
			InstructorName:  instructor.Name,
			InstructorEmail: instructor.Email,
			Seats:           seats,
			Price:           item.price,
			Status:          status,
		})
		if err != nil {
			fmt.Printf("Error creating class %q: %v\n", item.name, err)
			continue
		}
		successCount++
		fmt.Printf("Created class %q (%s)\n", class.Name, class.ID)
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d classes.\n", successCount, len(catalog))
}
