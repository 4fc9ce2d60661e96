package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"renthour-bot/internal/config"
	"renthour-bot/internal/storage"
	"renthour-bot/pkg/api"
	"renthour-bot/pkg/redis"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Bot struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	state    *StateStorage
	storage  *storage.PostgresStorage
	account  *api.Client
	cfg      *config.Config
	mu       sync.Mutex
	handlers map[string]func(context.Context, int64, string)
}

func New(
	token string,
	accountClient *api.Client,
	redisClient *redis.Client,
	pgStorage *storage.PostgresStorage,
	logger *zap.Logger,
	cfg *config.Config,
) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	b := &Bot{
		bot:     botAPI,
		logger:  logger,
		state:   NewStateStorage(redisClient),
		storage: pgStorage,
		account: accountClient,
		cfg:     cfg,
	}

	b.registerHandlers()
	return b, nil
}

func (b *Bot) registerHandlers() {
	b.handlers = map[string]func(context.Context, int64, string){
		StepListingSelection:  b.handleListingText,
		StepDurationSelection: b.handleDurationSelection,
		StepCustomHours:       b.handleCustomHours,
		StepConfirmation:      b.handleConfirmation,
	}
}

func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down bot")
			return nil

		case update := <-updates:
			b.mu.Lock()
			if update.Message != nil {
				b.processMessage(ctx, update.Message)
			} else if update.CallbackQuery != nil {
				b.processCallback(ctx, update.CallbackQuery)
			}
			b.mu.Unlock()
		}
	}
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.logger.Debug("Processing message",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text))

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command(), strings.Fields(msg.CommandArguments()))
		return
	}

	if b.handleMenuButton(ctx, chatID, msg.Text) {
		return
	}

	state, err := b.state.Get(ctx, chatID)
	if err != nil {
		b.handleDefault(ctx, chatID)
		return
	}

	if handler, exists := b.handlers[state.Step]; exists {
		handler(ctx, chatID, msg.Text)
	} else {
		b.handleDefault(ctx, chatID)
	}
}

func (b *Bot) processCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	b.logger.Debug("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("data", data))

	// Acknowledge so the client stops its spinner
	if _, err := b.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Error(err))
	}

	switch {
	case strings.HasPrefix(data, "listing:"):
		b.handleListingSelection(ctx, chatID, strings.TrimPrefix(data, "listing:"))
	case strings.HasPrefix(data, "status:"):
		b.handleStatusCallback(ctx, chatID, data)
	default:
		b.logger.Warn("Unknown callback data",
			zap.Int64("chat_id", chatID),
			zap.String("data", data))
	}
}

func (b *Bot) isAdmin(chatID int64) bool {
	for _, id := range b.cfg.Admin.IDs {
		if id == chatID {
			return true
		}
	}
	return false
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.bot.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Int64("chat_id", msg.ChatID),
			zap.String("text", msg.Text),
			zap.Error(err))
	}
}

func (b *Bot) sendError(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	b.sendMessage(msg)
}
