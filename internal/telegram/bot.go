package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"recipeclip/internal/clipper"
	"recipeclip/internal/config"
	"recipeclip/internal/recipe"
)

// clipTimeout bounds one extraction triggered from chat, AI fallback
// included.
const clipTimeout = 60 * time.Second

// Bot wraps the Telegram API and the recipe clipper.
type Bot struct {
	api     *tgbotapi.BotAPI
	clipper *clipper.Clipper
	repo    *recipe.Repository
	cfg     *config.Config
}

// NewBot initializes the Telegram Bot and sets the webhook.
func NewBot(cfg *config.Config, clip *clipper.Clipper, repo *recipe.Repository) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{api: bot, clipper: clip, repo: repo, cfg: cfg}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)",
			update.Message.From.ID, update.Message.From.UserName)
		return
	}

	b.handleMessage(update.Message)
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start" || text == "/help":
		b.reply(msg.Chat.ID, "Send me a recipe URL and I'll import it into your library.")
	case text == "/count":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		count, err := b.repo.Count(ctx)
		if err != nil {
			log.Printf("Failed to count recipes: %v", err)
			b.reply(msg.Chat.ID, "Sorry, I couldn't read the library right now.")
			return
		}
		b.reply(msg.Chat.ID, fmt.Sprintf("Your library holds %d recipes.", count))
	case strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://"):
		b.clipAndReply(msg.Chat.ID, text)
	default:
		b.reply(msg.Chat.ID, "That doesn't look like a URL. Send a recipe link, or /help.")
	}
}

func (b *Bot) clipAndReply(chatID int64, pageURL string) {
	b.reply(chatID, "Importing recipe, give me a moment...")

	ctx, cancel := context.WithTimeout(context.Background(), clipTimeout)
	defer cancel()

	result, err := b.clipper.ClipURL(ctx, pageURL)
	if err != nil {
		log.Printf("Failed to clip %s: %v", pageURL, err)
		b.reply(chatID, "Sorry, I couldn't find a recipe on that page.")
		return
	}

	b.reply(chatID, FormatResult(result))
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

// FormatResult renders an extraction result as a chat message.
func FormatResult(res *recipe.ExtractionResult) string {
	var sb strings.Builder

	sb.WriteString("🍽 " + res.Recipe.Title + "\n")
	if len(res.Recipe.Tags) > 0 {
		sb.WriteString(strings.Join(res.Recipe.Tags, " · ") + "\n")
	}
	if res.Recipe.Caption != "" {
		sb.WriteString("\n" + res.Recipe.Caption + "\n")
	}

	if len(res.Ingredients) > 0 {
		sb.WriteString("\nIngredients:\n")
		for _, ing := range res.Ingredients {
			line := "- " + ing.Name
			if ing.Amount != "" {
				line = "- " + ing.Amount + " " + ing.Name
			}
			if ing.Details != "" {
				line += " (" + ing.Details + ")"
			}
			sb.WriteString(line + "\n")
		}
	}

	if len(res.Recipe.Steps) > 0 {
		sb.WriteString("\nSteps:\n")
		for i, step := range res.Recipe.Steps {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
	}

	return sb.String()
}
