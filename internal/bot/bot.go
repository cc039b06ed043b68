// Package bot is the Telegram front end: command handlers over the state
// containers, the word fetcher and the notification scheduler. No domain logic
// lives here.
package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/example/lingobot/internal/ai"
	"github.com/example/lingobot/internal/history"
	"github.com/example/lingobot/internal/scheduler"
	"github.com/example/lingobot/internal/state"
	"github.com/example/lingobot/internal/storage"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// keyNotificationChat stores the chat reminders are delivered to. Set on
// /start; without it notification "permission" is not granted.
const keyNotificationChat = "notification-chat"

// MenuButton represents a button in an inline menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates an inline keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// Bot represents the Telegram bot application
type Bot struct {
	api       *tgbotapi.BotAPI
	token     string
	store     storage.Store
	selected  *state.LanguageSelection
	level     *state.VocabularyLevel
	settings  *state.NotificationSettings
	ledger    *history.Ledger
	gemini    *ai.Gemini
	scheduler *scheduler.Scheduler
	dataDir   string

	// chat reminders are delivered to; zero until /start
	chatID int64
}

// New creates a new bot instance. gemini may be nil when no API key is
// configured; /word then reports a setup hint instead of fetching.
func New(config *Config, store storage.Store, selected *state.LanguageSelection, level *state.VocabularyLevel,
	settings *state.NotificationSettings, ledger *history.Ledger, gemini *ai.Gemini) (*Bot, error) {
	b := &Bot{
		token:    config.Token,
		store:    store,
		selected: selected,
		level:    level,
		settings: settings,
		ledger:   ledger,
		gemini:   gemini,
		dataDir:  config.DataDir,
	}

	// Restore the delivery chat so reminders survive restarts
	if value, ok, err := store.Get(context.Background(), keyNotificationChat); err != nil {
		log.Printf("Warning: failed to load notification chat: %v", err)
	} else if ok {
		chatID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			log.Printf("Warning: invalid stored notification chat %q", value)
		} else {
			b.chatID = chatID
		}
	}

	return b, nil
}

// AttachScheduler wires the notification scheduler. Done after construction
// because the scheduler delivers through the bot.
func (b *Bot) AttachScheduler(s *scheduler.Scheduler) {
	b.scheduler = s
}

// Ready reports whether a delivery chat is registered. This is the bot's
// notification permission: granted once the user has started a chat.
func (b *Bot) Ready() bool {
	return b.chatID != 0
}

// Send delivers a notification as a Telegram message
func (b *Bot) Send(n scheduler.Notification) error {
	if b.chatID == 0 {
		return fmt.Errorf("no notification chat registered")
	}

	text := fmt.Sprintf("🔔 %s\n\n%s", n.Title, n.Body)
	msg := tgbotapi.NewMessage(b.chatID, text)
	return b.sendMessage(msg)
}

// Start connects to Telegram and processes updates until ctx is cancelled.
// Updates are handled synchronously so settings changes reach the scheduler
// one at a time.
func (b *Bot) Start(ctx context.Context) error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}

	b.api = botAPI
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches one Telegram update
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		if err := b.handleCommand(ctx, update.Message); err != nil {
			log.Printf("Error handling command /%s: %v", update.Message.Command(), err)
		}
	case update.CallbackQuery != nil:
		if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
			log.Printf("Error handling callback %s: %v", update.CallbackQuery.Data, err)
		}
	}
}

// registerChat records where reminders should be delivered
func (b *Bot) registerChat(ctx context.Context, chatID int64) {
	b.chatID = chatID
	if err := b.store.Set(ctx, keyNotificationChat, strconv.FormatInt(chatID, 10)); err != nil {
		// In-memory registration still works for this process
		log.Printf("Warning: failed to persist notification chat: %v", err)
	}
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) error {
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %v", err)
	}
	return nil
}

func (b *Bot) sendText(chatID int64, text string) error {
	return b.sendMessage(tgbotapi.NewMessage(chatID, text))
}
