package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/EnspikondPlus/neophytic-rooms-purple-base/a2a"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/api"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/api/agentapi"
	api_i "github.com/EnspikondPlus/neophytic-rooms-purple-base/api/i"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/config"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/infrastruture/repo"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/infrastruture/taskstore"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/service"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/service/i"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/solver"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Global variables for dependencies
var (
	cfg           config.Config
	appLogger     *zap.Logger
	redisClient   *redis.Client
	mongoClient   *mongo.Client
	taskStore     i.TaskStore
	solveRecorder i.SolveRecorder
	roomSolver    *solver.Solver
	executor      *service.Executor
	a2aController api_i.Controller
	router        *api.Router
)

func initLogger() {
	var err error
	appLogger, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
}

func initTaskStore(ctx context.Context) {
	if cfg.TaskStoreBackend != "redis" {
		taskStore = taskstore.NewMemory()
		appLogger.Info("In-memory task store initialized")
		return
	}

	redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error("Redis ping failed", zap.Error(err))
		os.Exit(1)
	}

	var err error
	taskStore, err = taskstore.NewRedis(redisClient, cfg.TaskTTLSeconds)
	if err != nil {
		appLogger.Error("Creating redis task store", zap.Error(err))
		os.Exit(1)
	}
	appLogger.Info("Redis task store initialized", zap.String("addr", cfg.RedisAddr))
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error("Failed to connect to MongoDB", zap.Error(err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error("MongoDB ping failed", zap.Error(err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")

	solveRecorder = repo.NewSolveRecordRepo(mongoClient, cfg.DBName, "solve_records")
	appLogger.Info("Solve record repository initialized")
}

func initSolver() {
	strategy, err := solver.ParseStrategy(cfg.SolverStrategy)
	if err != nil {
		appLogger.Error("Parsing solver strategy", zap.Error(err))
		os.Exit(1)
	}

	roomSolver = solver.New(&solver.Options{
		Strategy: strategy,
		MaxSteps: cfg.RandomWalkBudget,
	})
	appLogger.Info("Room solver initialized", zap.String("strategy", cfg.SolverStrategy))
}

func initExecutor() {
	var err error
	executor, err = service.NewExecutor(service.ExecutorConfig{
		Solver:   roomSolver,
		Store:    taskStore,
		Recorder: solveRecorder,
		Logger:   appLogger,
	})
	if err != nil {
		appLogger.Error("Creating executor", zap.Error(err))
		os.Exit(1)
	}
	appLogger.Info("Executor initialized")
}

func initA2AController() {
	cardURL := cfg.CardURL
	if cardURL == "" {
		cardURL = fmt.Sprintf("http://%s:%d/", cfg.HostIP, cfg.RESTPort)
	}

	card := &a2a.AgentCard{
		Name:               "Neophytic Rooms Purple Baseline",
		Description:        "A baseline purple agent that attempts to solve the Neophytic Rooms navigation puzzles",
		URL:                cardURL,
		Version:            "1.0.0",
		ProtocolVersion:    "1.0",
		Capabilities:       a2a.AgentCapabilities{Streaming: true},
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Skills: []a2a.AgentSkill{
			{
				ID:          "neophytic_rooms_purple_baseline",
				Name:        "Neophytic Rooms Purple Baseline",
				Description: "Baseline agent for solving room system navigation challenges.",
				Tags:        []string{"solver", "navigation", "planning"},
				Examples:    []string{"Solve the rooms puzzle"},
			},
		},
	}

	var err error
	a2aController, err = agentapi.NewA2AController(card, executor, taskStore, appLogger)
	if err != nil {
		appLogger.Error("Creating A2A controller", zap.Error(err))
		os.Exit(1)
	}
	appLogger.Info("A2A controller initialized")
}

func initRouter() {
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", cfg.HostIP, cfg.RESTPort),
		GinMode:     cfg.GinMode,
		Controllers: []api_i.Controller{a2aController},
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	cfg = config.Load()

	initLogger()
	defer func() {
		_ = appLogger.Sync()
	}()

	initTaskStore(ctx)
	if redisClient != nil {
		defer func() {
			_ = redisClient.Close()
		}()
	}

	if cfg.RecordResults {
		initMongo(ctx)
		defer func() {
			_ = mongoClient.Disconnect(ctx)
		}()
	}

	initSolver()
	initExecutor()
	initA2AController()
	initRouter()

	appLogger.Info("Purple agent running",
		zap.String("host", cfg.HostIP),
		zap.Int("port", cfg.RESTPort))

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error("Starting server", zap.Error(err))
		os.Exit(1)
	}
}
