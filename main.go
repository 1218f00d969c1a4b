package main

import (
	"context"
	"os"
	"os/signal"

	"sharpbot/internal/adapters/handler"
	"sharpbot/internal/adapters/provider"
	"sharpbot/internal/adapters/sender"
	"sharpbot/internal/adapters/store"
	"sharpbot/internal/config"
	"sharpbot/internal/core/domain/command"
	"sharpbot/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting sharpbot...")

	if err := config.Load("", true); err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	zerolog.SetGlobalLevel(config.LogLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	token := viper.GetString("telegram.bot_token")
	opts := []bot.Option{
		bot.WithDefaultHandler(noOpHandler),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegram(b)

	authorizer, err := service.NewAuthorizer(s)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing authorizer")
	}

	tracker := service.NewUsageTracker(ctx, s)

	outputs := store.NewDisk(viper.GetString("storage.output_dir"), true)
	node := service.NewUnsharpMask(provider.NewHTTP(), outputs)

	commandRegistry := &command.Registry{}
	commandRegistry.Register(command.NewSharpen(node, outputs, s, s, authorizer, tracker, "/sharpen"))
	commandRegistry.Register(command.NewUsage(tracker, s, "/usage"))
	commandRegistry.Register(command.NewDebug(s, node.Descriptor(), "/debug"))

	handlerTimeout, err := config.HandlerTimeout()
	if err != nil {
		log.Panic().Err(err).Msg("invalid handler timeout")
	}

	commandHandler := handler.NewCommand(commandRegistry, handlerTimeout)

	b.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, commandHandler.Handle)
	b.RegisterHandler(bot.HandlerTypePhotoCaption, "/", bot.MatchTypePrefix, commandHandler.Handle)

	log.Info().Strs("commands", commandRegistry.ListCommands()).Msg("bot listening")
	b.Start(ctx)
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
