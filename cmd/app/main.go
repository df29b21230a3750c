package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/openclassware/blogd/internal/blogservice"
	"github.com/openclassware/blogd/internal/common"
	"github.com/openclassware/blogd/internal/postservice"
	"github.com/openclassware/blogd/internal/searchservice"
	"github.com/openclassware/blogd/internal/timelineservice"
	"github.com/openclassware/blogd/internal/userservice"
)

type application struct {
	config          *Config
	logger          *slog.Logger
	resolver        userservice.Resolver
	access          userservice.AccessChecker
	blogService     *blogservice.BlogService
	postService     *postservice.PostService
	searchEngine    *searchservice.Engine
	notifier        *timelineservice.Notifier
	timelineService *timelineservice.TimelineService
	broker          *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupBlogExchange(broker)
	if err != nil {
		logger.Error("failed to setup the blog exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	blogService := blogservice.NewBlogService(db, cache)
	postService := postservice.NewPostService(db, blogService, cfg.PagingSize)

	searchEngine := searchservice.NewEngine(db, searchservice.Config{
		Enabled:        cfg.SearchEnabled,
		Domains:        cfg.SearchDomains,
		BlogWordMinLen: cfg.BlogWordMinSize,
		PostWordMinLen: cfg.PostWordMinSize,
	}, logger)

	app := &application{
		config:          cfg,
		logger:          logger,
		resolver:        userservice.NewHTTPResolver(cfg.SessionURL),
		access:          blogservice.NewAccessChecker(blogService),
		blogService:     blogService,
		postService:     postService,
		searchEngine:    searchEngine,
		notifier:        timelineservice.NewNotifier(broker, logger),
		timelineService: timelineservice.NewTimelineService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.TimelineRecipient, cfg.MailPort, logger),
		broker:          broker,
	}

	go app.timelineService.SendEditorialDigest()
	defer app.timelineService.Close()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
