package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/stemsi/coursehub-backend/internal/config"
	"github.com/stemsi/coursehub-backend/internal/database"
	"github.com/stemsi/coursehub-backend/internal/logger"
	"github.com/stemsi/coursehub-backend/internal/repository"
	"github.com/stemsi/coursehub-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	var email, name string
	flag.StringVar(&email, "email", "", "Admin email")
	flag.StringVar(&name, "name", "", "Admin display name")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── CLI Input ─────────────────────────────────────────────────────
	// Prompt only for values missing from flags, and only on a terminal.
	if email == "" || name == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Println("Error: -email and -name are required when stdin is not a terminal")
			os.Exit(2)
		}

		reader := bufio.NewReader(os.Stdin)
		fmt.Println("=== Create Admin User ===")

		if name == "" {
			fmt.Print("Enter Name: ")
			name, _ = reader.ReadString('\n')
		}
		if email == "" {
			fmt.Print("Enter Email: ")
			email, _ = reader.ReadString('\n')
		}
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		fmt.Println("Error: a valid email is required")
		os.Exit(2)
	}

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userService := service.NewUserService(repository.NewUserRepository(pool))

	// An existing account keeps its profile and is promoted.
	admin, err := userService.EnsureAdmin(ctx, email, name)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) ready with ID: %s\n", admin.Name, admin.Email, admin.ID)
}
