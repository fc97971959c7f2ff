package app

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sahilchouksey/internship-simulator/api"
	"github.com/sahilchouksey/internship-simulator/config"
	"github.com/sahilchouksey/internship-simulator/database"
	"github.com/sahilchouksey/internship-simulator/router"
	"github.com/sahilchouksey/internship-simulator/services"
	"github.com/sahilchouksey/internship-simulator/services/cron"
	"github.com/sahilchouksey/internship-simulator/services/openai"
	"github.com/sahilchouksey/internship-simulator/services/supervisor"
	"gorm.io/gorm"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err

	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		print("If not running, run the following command:\n")
		print("  make docker-up   (for Docker setup)\n")
		print("  make db-up       (for local PostgreSQL)\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		print("Error running migrations:\n")
		return err
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		db, ok := store.GetDB().(*gorm.DB)
		if !ok {
			print("Warning: Failed to get database connection for cron jobs\n")
		} else {
			chatClient := openai.NewChatClient(openai.Config{
				APIKey:  getEnv.OPENAI_API_KEY,
				BaseURL: getEnv.OPENAI_ENDPOINT,
				Model:   getEnv.OPENAI_MODEL,
			})
			gateway := supervisor.NewGateway(chatClient)
			internshipService := services.NewInternshipService(db, gateway)

			cronManager = cron.NewCronManager(db, internshipService)
			if err := cronManager.Start(); err != nil {
				print("Warning: Failed to start cron jobs\n")
				print("Error: ", err.Error(), "\n")
				// Don't fail the app, just log the warning
			}
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	app.Use(recover.New())

	// Setup Routes (request logging is wired by the security middleware)
	router.SetupRoutes(app, store, getEnv)

	// Get the PORT & Start the Server
	return server.Run()

}
