package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamflow/core/internal/adapters/repository"
	"github.com/teamflow/core/internal/application/services"
	"github.com/teamflow/core/internal/domain/entities"
	"github.com/teamflow/core/internal/infrastructure/config"
	"github.com/teamflow/core/internal/infrastructure/database"
	"github.com/teamflow/core/internal/infrastructure/logger"
	"github.com/teamflow/core/internal/infrastructure/server"
	"github.com/teamflow/core/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the TeamFlow API server",
		Long:  "Start the TeamFlow API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up", 0)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down", 0)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with demo data",
		Long:  "Create two demo users with a shared workspace, a project and a handful of tasks",
		Run: func(cmd *cobra.Command, args []string) {
			runSeed()
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	db, err := database.New(cfg.Database)
	if err != nil {
		appLogger.Fatalw("Failed to connect to database", "error", err)
	}
	defer db.Close()

	srv, err := server.New(cfg, db, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting TeamFlow API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatalw("Server failed to start", "error", err)
	}
}

func runMigration(direction string, steps int) {
	m := newMigrator()

	var err error
	switch direction {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps > 0 {
			err = m.Steps(-steps)
		} else {
			err = m.Down()
		}
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	m := newMigrator()

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func newMigrator() *migrate.Migrate {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	return m
}

func runSeed() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store := repository.NewStore(db)
	access := services.NewAccessResolver(store, appLogger)
	coordinator := services.NewMutationCoordinator(store, appLogger)
	workspaceService := services.NewWorkspaceService(store, access, coordinator, appLogger)
	projectService := services.NewProjectService(store, access, coordinator, appLogger)
	taskService := services.NewTaskService(store, access, coordinator, appLogger)

	ctx := context.Background()

	alice := seedUser(ctx, store, "alice@example.com", "Alice Johnson")
	bob := seedUser(ctx, store, "bob@example.com", "Bob Smith")

	workspace, err := workspaceService.CreateWorkspace(ctx, alice.ID, ports.CreateWorkspaceRequest{
		Name: "Acme Inc",
		Slug: "acme",
	})
	if err != nil {
		log.Fatalf("Failed to create workspace: %v", err)
	}

	// Bob joins Alice's workspace directly; there is no invite flow yet.
	err = store.Memberships().Create(ctx, &entities.Membership{
		ID:          uuid.New(),
		UserID:      bob.ID,
		WorkspaceID: workspace.ID,
		Role:        entities.MembershipRoleMember,
	})
	if err != nil {
		log.Fatalf("Failed to add member: %v", err)
	}

	project, err := projectService.CreateProject(ctx, alice.ID, workspace.ID, ports.CreateProjectRequest{
		Name: "Website Redesign",
	})
	if err != nil {
		log.Fatalf("Failed to create project: %v", err)
	}

	sections, err := store.Sections().ListForProject(ctx, project.ID)
	if err != nil {
		log.Fatalf("Failed to list sections: %v", err)
	}

	titles := []string{"Draft homepage copy", "Design landing hero", "Set up staging environment"}
	for _, title := range titles {
		_, err := taskService.CreateTask(ctx, alice.ID, project.ID, ports.CreateTaskRequest{
			Title:       title,
			SectionID:   &sections[0].ID,
			AssigneeIDs: []uuid.UUID{bob.ID},
		})
		if err != nil {
			log.Fatalf("Failed to create task: %v", err)
		}
	}

	fmt.Println("Seed completed:")
	fmt.Printf("  alice@example.com / password123\n")
	fmt.Printf("  bob@example.com / password123\n")
	fmt.Printf("  Workspace: %s (%s)\n", workspace.Name, workspace.Slug)
	fmt.Printf("  Project:   %s with %d tasks\n", project.Name, len(titles))
}

func seedUser(ctx context.Context, store *repository.Store, email, name string) *entities.User {
	if existing, err := store.Users().GetByEmail(ctx, email); err == nil {
		return existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := store.Users().Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}
