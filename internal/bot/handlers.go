package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/lingobot/internal/ai"
	"github.com/example/lingobot/internal/excel"
	"github.com/example/lingobot/internal/language"
	"github.com/example/lingobot/internal/progress"
	"github.com/example/lingobot/internal/scheduler"
	"github.com/example/lingobot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data prefixes for inline keyboards
const (
	callbackLanguage = "lang:"
	callbackLevel    = "level:"
	callbackNotif    = "notif:"
)

// recentWordsInPrompt bounds the exclusion list appended to the generation
// prompt so it doesn't grow with the whole history.
const recentWordsInPrompt = 50

// shownHistoryWords bounds the /progress listing
const shownHistoryWords = 10

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		return b.handleStart(ctx, message)
	case "help":
		return b.handleHelp(message)
	case "language":
		return b.handleLanguageMenu(message)
	case "level":
		return b.handleLevelMenu(message)
	case "word":
		return b.handleWord(ctx, message.Chat.ID)
	case "progress":
		return b.handleProgress(ctx, message)
	case "notifications":
		return b.handleNotificationsMenu(message.Chat.ID)
	case "testnotify":
		return b.handleTestNotification(message)
	case "export":
		return b.handleExport(ctx, message)
	case "clear":
		return b.handleClear(ctx, message)
	default:
		return b.sendText(message.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
}

func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) error {
	if message == nil || message.Chat == nil {
		return fmt.Errorf("invalid message: required fields are missing")
	}

	b.registerChat(ctx, message.Chat.ID)

	text := "👋 Welcome to LingoBot!\n\n" +
		"I send you one new word at a time in the language you are learning.\n\n" +
		"🔹 How it works:\n" +
		"1. Pick a language with /language\n" +
		"2. Pick a difficulty with /level\n" +
		"3. Get words with /word\n" +
		"4. Track your streak with /progress\n\n" +
		"Turn on daily reminders with /notifications."

	if !b.selected.IsSelected() {
		msg := tgbotapi.NewMessage(message.Chat.ID, text)
		msg.ReplyMarkup = languageKeyboard()
		return b.sendMessage(msg)
	}
	return b.sendText(message.Chat.ID, text)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) error {
	text := "📖 Commands\n\n" +
		"/language - Choose your learning language\n" +
		"/level - Choose vocabulary difficulty\n" +
		"/word - Get the next word\n" +
		"/progress - Streak and recently learned words\n" +
		"/notifications - Daily reminder settings\n" +
		"/testnotify - Send a test reminder now\n" +
		"/export - Export your word history (.xlsx)\n" +
		"/clear - Clear the current language's history"
	return b.sendText(message.Chat.ID, text)
}

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]MenuButton
	var row []MenuButton
	for _, l := range language.Supported {
		row = append(row, MenuButton{Text: l.Name, CallbackData: callbackLanguage + l.Code})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return createKeyboard(rows)
}

func (b *Bot) handleLanguageMenu(message *tgbotapi.Message) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, "🌍 Choose your language:")
	msg.ReplyMarkup = languageKeyboard()
	return b.sendMessage(msg)
}

func (b *Bot) handleLevelMenu(message *tgbotapi.Message) error {
	var rows [][]MenuButton
	for _, level := range models.Levels {
		rows = append(rows, []MenuButton{{
			Text:         capitalize(string(level)),
			CallbackData: callbackLevel + string(level),
		}})
	}
	msg := tgbotapi.NewMessage(message.Chat.ID, "📚 Choose your vocabulary level:")
	msg.ReplyMarkup = createKeyboard(rows)
	return b.sendMessage(msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// handleWord fetches the next word, records it in the ledger and shows it
func (b *Bot) handleWord(ctx context.Context, chatID int64) error {
	if !b.selected.IsSelected() {
		return b.sendText(chatID, "Pick a language first with /language.")
	}
	if b.gemini == nil {
		return b.sendText(chatID, "Word generation is not configured. Set GEMINI_API_KEY and restart the bot.")
	}

	code := b.selected.Code()
	recent := b.ledger.RecentWordTexts(code, recentWordsInPrompt)

	record, err := b.gemini.FetchWord(ctx, code, b.level.Level(), recent)
	if err != nil {
		// Fetch failures are user-visible, never fatal; the user re-triggers
		log.Printf("Error fetching word for %s: %v", code, err)
		return b.sendText(chatID, fetchErrorText(err))
	}

	// Storage failure keeps the durable history unchanged; still show the word
	if err := b.ledger.AddWord(ctx, code, record); err != nil {
		log.Printf("Warning: failed to record word %q: %v", record.Word, err)
	}

	text := fmt.Sprintf("🆕 %s\n\n"+
		"Word: %s\n"+
		"Translation: %s\n"+
		"Pronunciation: %s\n"+
		"Example: %s",
		language.DisplayName(code), record.Word, record.Translation, record.Pronunciation, record.ExampleSentence)
	return b.sendText(chatID, text)
}

func fetchErrorText(err error) string {
	switch {
	case errors.Is(err, language.ErrUnknownLanguage):
		return "I don't know that language. Pick one with /language."
	case errors.Is(err, ai.ErrMalformedResponse):
		return "Failed to parse learning content. Try /word again."
	default:
		return "Failed to fetch learning content. Try /word again."
	}
}

func (b *Bot) handleProgress(ctx context.Context, message *tgbotapi.Message) error {
	if !b.selected.IsSelected() {
		return b.sendText(message.Chat.ID, "Pick a language first with /language to start tracking progress.")
	}

	code := b.selected.Code()
	if err := b.ledger.LoadWords(ctx, code); err != nil {
		log.Printf("Warning: failed to load word history for %s: %v", code, err)
	}

	words := b.ledger.Words(code)
	stats := progress.Compute(words, time.Now())

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Your %s progress\n\n", language.DisplayName(code))
	fmt.Fprintf(&sb, "🔥 Day streak: %d\n", stats.Streak)
	fmt.Fprintf(&sb, "📚 Words learned: %d\n", stats.WordsLearned)

	if len(words) == 0 {
		sb.WriteString("\nNo words learned yet. Get your first with /word!")
	} else {
		sb.WriteString("\nRecently learned:\n")
		shown := words
		if len(shown) > shownHistoryWords {
			shown = shown[:shownHistoryWords]
		}
		for _, w := range shown {
			fmt.Fprintf(&sb, "• %s — %s (%s)\n", w.Word, w.Translation, w.LearnedAt().Format("Jan 2"))
		}
	}

	return b.sendText(message.Chat.ID, sb.String())
}

// handleNotificationsMenu shows the reminder settings with toggle buttons
func (b *Bot) handleNotificationsMenu(chatID int64) error {
	settings := b.settings.Settings()

	onOff := func(enabled bool) string {
		if enabled {
			return "✅"
		}
		return "❌"
	}

	rows := [][]MenuButton{
		{{Text: fmt.Sprintf("%s Daily reminders", onOff(settings.Enabled)), CallbackData: callbackNotif + "enabled"}},
		{{Text: fmt.Sprintf("%s Morning (09:00)", onOff(settings.MorningTime)), CallbackData: callbackNotif + "morning"}},
		{{Text: fmt.Sprintf("%s Afternoon (14:00)", onOff(settings.AfternoonTime)), CallbackData: callbackNotif + "afternoon"}},
		{{Text: fmt.Sprintf("%s Evening (20:00)", onOff(settings.EveningTime)), CallbackData: callbackNotif + "evening"}},
	}

	msg := tgbotapi.NewMessage(chatID, "🔔 Notification settings\n\nTap a row to toggle it.")
	msg.ReplyMarkup = createKeyboard(rows)
	return b.sendMessage(msg)
}

func (b *Bot) handleTestNotification(message *tgbotapi.Message) error {
	if err := b.scheduler.SendTestNotification(); err != nil {
		if errors.Is(err, scheduler.ErrPermissionDenied) {
			return b.sendText(message.Chat.ID, "I can't send reminders yet. Use /start first.")
		}
		log.Printf("Error sending test notification: %v", err)
		return b.sendText(message.Chat.ID, "Failed to send the test notification.")
	}
	return nil
}

func (b *Bot) handleExport(ctx context.Context, message *tgbotapi.Message) error {
	if !b.selected.IsSelected() {
		return b.sendText(message.Chat.ID, "Pick a language first with /language.")
	}

	code := b.selected.Code()
	if err := b.ledger.LoadWords(ctx, code); err != nil {
		log.Printf("Warning: failed to load word history for %s: %v", code, err)
	}

	words := b.ledger.Words(code)
	if len(words) == 0 {
		return b.sendText(message.Chat.ID, "Nothing to export yet. Learn some words first with /word.")
	}

	filePath := filepath.Join(b.dataDir, fmt.Sprintf("history_%s.xlsx", code))
	if err := excel.ExportHistory(filePath, words); err != nil {
		log.Printf("Error exporting history for %s: %v", code, err)
		return b.sendText(message.Chat.ID, "Failed to export your word history.")
	}
	defer os.Remove(filePath)

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FilePath(filePath))
	doc.Caption = fmt.Sprintf("Your %s word history (%d words)", language.DisplayName(code), len(words))
	if _, err := b.api.Send(doc); err != nil {
		return fmt.Errorf("failed to send export: %v", err)
	}
	return nil
}

func (b *Bot) handleClear(ctx context.Context, message *tgbotapi.Message) error {
	if !b.selected.IsSelected() {
		return b.sendText(message.Chat.ID, "Pick a language first with /language.")
	}

	code := b.selected.Code()
	if err := b.ledger.ClearHistory(ctx, code); err != nil {
		log.Printf("Warning: failed to clear history for %s: %v", code, err)
		return b.sendText(message.Chat.ID, "Failed to clear your word history.")
	}
	return b.sendText(message.Chat.ID, fmt.Sprintf("🗑 %s history cleared.", language.DisplayName(code)))
}

// handleCallback handles inline keyboard taps
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	// Acknowledge the tap so the client stops the spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("Warning: failed to answer callback: %v", err)
	}

	data := callback.Data
	chatID := callback.Message.Chat.ID

	switch {
	case strings.HasPrefix(data, callbackLanguage):
		return b.handleLanguageSelect(ctx, chatID, strings.TrimPrefix(data, callbackLanguage))
	case strings.HasPrefix(data, callbackLevel):
		return b.handleLevelSelect(ctx, chatID, models.VocabularyLevel(strings.TrimPrefix(data, callbackLevel)))
	case strings.HasPrefix(data, callbackNotif):
		return b.handleNotificationToggle(ctx, chatID, strings.TrimPrefix(data, callbackNotif))
	default:
		return fmt.Errorf("unknown callback data: %s", data)
	}
}

func (b *Bot) handleLanguageSelect(ctx context.Context, chatID int64, code string) error {
	if _, err := language.ByCode(code); err != nil {
		return b.sendText(chatID, "I don't know that language.")
	}

	if err := b.selected.Set(ctx, code); err != nil {
		log.Printf("Warning: failed to save language selection: %v", err)
		return b.sendText(chatID, "Failed to save your language selection.")
	}

	if err := b.ledger.LoadWords(ctx, code); err != nil {
		log.Printf("Warning: failed to load word history for %s: %v", code, err)
	}

	// Reminder texts embed the language, so the schedule must be rebuilt
	b.reschedule(chatID)

	return b.sendText(chatID, fmt.Sprintf("🌍 Your learning language is now %s. Get your first word with /word!",
		language.DisplayName(code)))
}

func (b *Bot) handleLevelSelect(ctx context.Context, chatID int64, level models.VocabularyLevel) error {
	if err := b.level.Set(ctx, level); err != nil {
		log.Printf("Warning: failed to save vocabulary level: %v", err)
		return b.sendText(chatID, "Failed to save your vocabulary level.")
	}

	b.reschedule(chatID)

	return b.sendText(chatID, fmt.Sprintf("📚 Vocabulary level set to %s.", level))
}

func (b *Bot) handleNotificationToggle(ctx context.Context, chatID int64, field string) error {
	err := b.settings.Update(ctx, func(s *models.NotificationSettings) {
		switch field {
		case "enabled":
			s.Enabled = !s.Enabled
		case "morning":
			s.MorningTime = !s.MorningTime
		case "afternoon":
			s.AfternoonTime = !s.AfternoonTime
		case "evening":
			s.EveningTime = !s.EveningTime
		}
	})
	if err != nil {
		log.Printf("Warning: failed to save notification settings: %v", err)
		return b.sendText(chatID, "Failed to save your notification settings.")
	}

	b.reschedule(chatID)

	// Re-render the menu so the toggles reflect the new state
	return b.handleNotificationsMenu(chatID)
}

// reschedule forwards a settings change to a single ScheduleNotifications
// call. Updates are handled one at a time, so calls never overlap.
func (b *Bot) reschedule(chatID int64) {
	if err := b.scheduler.ScheduleNotifications(); err != nil {
		if errors.Is(err, scheduler.ErrPermissionDenied) {
			if err := b.sendText(chatID, "I can't schedule reminders yet. Use /start first."); err != nil {
				log.Printf("Error sending permission prompt: %v", err)
			}
			return
		}
		log.Printf("Error scheduling notifications: %v", err)
		if err := b.sendText(chatID, "Failed to schedule reminders. Toggle the setting again to retry."); err != nil {
			log.Printf("Error sending scheduling alert: %v", err)
		}
	}
}
