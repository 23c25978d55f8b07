package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/AYEX777/Pr-sub001/internal/config"
	"github.com/AYEX777/Pr-sub001/internal/models"
	"github.com/AYEX777/Pr-sub001/internal/utils"
)

// Telegram pushes critical risk alerts to an ops chat. Best-effort only:
// send failures are logged and never surface to the scoring pass.
type Telegram struct {
	token   string
	chatID  int64
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewTelegram returns nil when no bot token or chat id is configured, which
// disables the sink.
func NewTelegram(cfg config.Config, logger *logrus.Logger) *Telegram {
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == 0 {
		return nil
	}
	return &Telegram{
		token:   cfg.Telegram.BotToken,
		chatID:  cfg.Telegram.ChatID,
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		logger:  logger,
	}
}

// NotifyAlert forwards critical alerts to the ops chat.
func (t *Telegram) NotifyAlert(alert models.Alert) {
	if alert.Severity != models.SeverityCritical {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := t.limiter.Wait(ctx); err != nil {
		t.logger.Warnf("Telegram rate limit wait failed for alert %s: %v", alert.ID, err)
		return
	}

	text := fmt.Sprintf("*CRITICAL RISK ALERT*\nLine: %s\n%s", alert.LineID, alert.Message)
	err := utils.Retry(t.logger, 3, time.Second, func() error {
		b, err := bot.New(t.token)
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram bot: %w", err)
		}
		_, err = b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    t.chatID,
			Text:      text,
			ParseMode: "Markdown",
		})
		return err
	})
	if err != nil {
		t.logger.Errorf("Telegram notification failed for alert %s: %v", alert.ID, err)
	}
}
