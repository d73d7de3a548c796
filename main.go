package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"borgo/internal/adapters/generator"
	"borgo/internal/adapters/storage"
	"borgo/internal/adapters/telegram"
	"borgo/internal/core/port"
	"borgo/internal/core/service"
	"borgo/internal/modules"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	log.Info().Msg("starting borgo...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	setupLogging()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	token := viper.GetString("telegram.bot_token")
	ownerID := viper.GetInt64("telegram.owner_id")

	store, err := storage.Open(viper.GetString("bot.storage_path"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed opening storage")
	}

	b, err := bot.New(token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing telegram bot")
	}

	engine := service.NewEngine(telegram.NewMessenger(b), store)

	orGenerator := generator.NewOpenRouterGenerator(
		viper.GetString("openrouter.api_key"),
		viper.GetString("ask.system_prompt"),
		viper.GetString("ask.model"))

	var factory func() []port.Module
	factory = func() []port.Module {
		return []port.Module{
			modules.NewPing(),
			modules.NewHelp(engine, engine.Settings),
			modules.NewPrefix(engine.Settings),
			modules.NewStats(engine.Store.Namespace("mod/stats")),
			modules.NewAsk(orGenerator),
			modules.NewManager(engine, factory),
		}
	}

	if err := engine.LoadAll(factory(), "built-in"); err != nil {
		log.Error().Err(err).Msg("some modules failed to load")
	}

	handler := telegram.NewHandler(engine, ownerID)
	b.RegisterHandlerMatchFunc(matchAll, handler.Handle)

	engine.Start(ctx)

	log.Info().Msg("bot listening")
	b.Start(ctx)

	// ordered teardown: flush modules, close shared resources, then let
	// post-teardown listeners run
	shutdownCtx := context.Background()
	engine.Stop(shutdownCtx)

	if err := store.Close(); err != nil {
		log.Warn().Err(err).Msg("failed closing storage")
	}

	engine.Stopped(shutdownCtx)
	log.Info().Msg("bot stopped")
}

func matchAll(_ *models.Update) bool { return true }

func setupLogging() {
	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if logFile := viper.GetString("bot.log_file"); logFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		log.Logger = log.Output(io.MultiWriter(os.Stderr, rotated))
	}
}
