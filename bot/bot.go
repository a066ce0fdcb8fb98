package bot

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"helium-explorer/config"
	"helium-explorer/render"
	"helium-explorer/view"
)

const (
	moreCallbackPrefix = "more:"
	requestTimeout     = 30 * time.Second
	hashWidth          = 6
	chatKeyPrefix      = "tg:"

	// maxMessageLen is the Telegram limit on the text of one message.
	maxMessageLen = 4096
	preOpen       = "<pre>\n"
	preClose      = "</pre>"
)

// Bot serves block views over Telegram, one view per chat.
type Bot struct {
	botApi *tgbotapi.BotAPI

	views  *view.Registry
	logger *zap.SugaredLogger

	validUsers map[string]bool
}

func New(cfg *config.BotConfig, views *view.Registry) *Bot {
	botApi, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		panic(err)
	}

	bot := &Bot{
		botApi: botApi,

		views:  views,
		logger: zap.S().Named("[bot]"),

		validUsers: make(map[string]bool),
	}

	for _, user := range cfg.ValidUsers {
		bot.validUsers[user] = true
	}

	bot.logger.Infof("Telegram explorer bot authorized on account [%s]", botApi.Self.UserName)

	return bot
}

func (b *Bot) Start() {
	b.logger.Infof("Started telegram explorer bot")

	go func() {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60

		updates := b.botApi.GetUpdatesChan(u)
		for update := range updates {
			switch {
			case update.CallbackQuery != nil:
				b.handleCallback(update.CallbackQuery)
			case update.Message != nil && update.Message.IsCommand():
				b.handleCommand(update.Message)
			}
		}
	}()
}

func (b *Bot) Stop() {
	b.botApi.StopReceivingUpdates()
}

func (b *Bot) EvictIdle(maxIdle time.Duration) {
	if evicted := b.views.EvictIdle(maxIdle); evicted > 0 {
		b.logger.Infof("Evicted [%d] idle chats, [%d] left", evicted, b.views.Len())
	}
}

func chatKey(chatID int64) string {
	return chatKeyPrefix + strconv.FormatInt(chatID, 10)
}

// isAuthorizedUser allows everyone when no valid users are configured.
func (b *Bot) isAuthorizedUser(username string, chatID int64) bool {
	if len(b.validUsers) == 0 || b.validUsers[username] {
		return true
	}

	b.logger.Warnf("Unauthorized user %s tried to access the bot", username)
	b.sendMessage(chatID, "You are not authorized to use this bot.", nil)
	return false
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if msg.From == nil || !b.isAuthorizedUser(msg.From.UserName, chatID) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	v := b.views.Get(chatKey(chatID))
	from := 0
	switch msg.Command() {
	case "start", "help":
		b.sendMessage(chatID, "Send /block &lt;hash|height&gt; to open a block, /more to load more transactions.", nil)
		return
	case "block":
		hash, height, err := parseBlockArg(msg.CommandArguments())
		if err != nil {
			b.sendMessage(chatID, html.EscapeString(err.Error()), nil)
			return
		}
		if hash != "" {
			err = v.Navigate(ctx, hash)
		} else {
			err = v.LoadHeight(ctx, height)
		}
		if err != nil && v.State().Hash == "" {
			b.sendMessage(chatID, html.EscapeString(err.Error()), nil)
			return
		}
	case "more":
		from = len(v.State().Transactions)
		if err := v.LoadMore(ctx); err != nil && v.State().Block == nil {
			b.sendMessage(chatID, html.EscapeString(err.Error()), nil)
			return
		}
	default:
		b.sendMessage(chatID, "Unknown command, try /help", nil)
		return
	}

	b.sendView(chatID, v.State(), from)
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	if query.Message == nil || !strings.HasPrefix(query.Data, moreCallbackPrefix) {
		return
	}
	chatID := query.Message.Chat.ID
	if query.From == nil || !b.isAuthorizedUser(query.From.UserName, chatID) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	v := b.views.Get(chatKey(chatID))
	from := len(v.State().Transactions)
	answer := ""
	if hash := strings.TrimPrefix(query.Data, moreCallbackPrefix); hash != v.State().Hash {
		answer = "This block is no longer displayed"
	} else if err := v.LoadMore(ctx); err != nil {
		answer = err.Error()
	}

	if _, err := b.botApi.Request(tgbotapi.NewCallback(query.ID, answer)); err != nil {
		b.logger.Errorf("Error answering callback: %v", err)
	}
	if answer == "" {
		b.sendView(chatID, v.State(), from)
	}
}

// sendView sends the transactions from index from onwards, split over as
// many messages as needed. The keyboard goes with the last one.
func (b *Bot) sendView(chatID int64, state view.State, from int) {
	texts, markup, err := formatView(state, from)
	if err != nil {
		b.logger.Errorf("Error rendering block view: %v", err)
		return
	}
	for i, text := range texts {
		if i == len(texts)-1 {
			b.sendMessage(chatID, text, markup)
		} else {
			b.sendMessage(chatID, text, nil)
		}
	}
}

func (b *Bot) sendMessage(chatID int64, textMsg string, replyMarkup *tgbotapi.InlineKeyboardMarkup) {
	if chatID == 0 {
		b.logger.Errorf("Telegram chat ID is zero")
		return
	}

	msg := tgbotapi.NewMessage(chatID, textMsg)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if replyMarkup != nil {
		msg.ReplyMarkup = replyMarkup
	}

	if _, err := b.botApi.Send(msg); err != nil {
		b.logger.Errorf("Error sending message: %v", err)
	}
}

// formatView renders a state as HTML messages. Only transactions from index
// from onwards are listed, so a "Load more" reply carries just the new page.
// The "Load more" button is attached only while more transactions can be
// loaded.
func formatView(state view.State, from int) ([]string, *tgbotapi.InlineKeyboardMarkup, error) {
	var buf bytes.Buffer
	buf.WriteString(render.Card(state))
	if state.Block != nil {
		buf.WriteString("\n")

		var err error
		switch txns := state.Transactions; {
		case from <= 0:
			err = render.Transactions(&buf, txns, render.Markdown, hashWidth)
		case from < len(txns):
			fmt.Fprintf(&buf, "Transactions %d-%d\n", from+1, len(txns))
			err = render.Transactions(&buf, txns[from:], render.Markdown, hashWidth)
		}
		if err != nil {
			return nil, nil, err
		}
		buf.WriteString(render.Footer(state))
	}

	texts := splitMessage(buf.String(), maxMessageLen-len(preOpen)-len(preClose))
	for i, text := range texts {
		texts[i] = preOpen + text + preClose
	}
	if !state.CanLoadMore() {
		return texts, nil, nil
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Load more", moreCallbackPrefix+state.Hash),
		),
	)
	return texts, &markup, nil
}

// splitMessage escapes text and cuts it at line boundaries into pieces of at
// most limit bytes. Lines longer than limit are cut at rune boundaries.
func splitMessage(text string, limit int) []string {
	var (
		chunks []string
		cur    strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		escaped := html.EscapeString(line)
		if cur.Len()+len(escaped) > limit {
			flush()
		}
		for len(escaped) > limit {
			head, rest := cutEscaped(line, limit)
			chunks = append(chunks, head)
			line = rest
			escaped = html.EscapeString(line)
		}
		cur.WriteString(escaped)
	}
	flush()

	if len(chunks) == 0 {
		chunks = append(chunks, "")
	}
	return chunks
}

// cutEscaped returns the longest rune prefix of line whose escaped form fits
// in limit, escaped, and the unescaped remainder.
func cutEscaped(line string, limit int) (string, string) {
	var head strings.Builder
	for i, r := range line {
		escaped := html.EscapeString(string(r))
		if head.Len()+len(escaped) > limit {
			return head.String(), line[i:]
		}
		head.WriteString(escaped)
	}
	return head.String(), ""
}

// parseBlockArg accepts either a block hash or a decimal height.
func parseBlockArg(arg string) (string, uint64, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", 0, errors.New("usage: /block <hash|height>")
	}
	if height, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return "", height, nil
	}
	return arg, 0, nil
}
