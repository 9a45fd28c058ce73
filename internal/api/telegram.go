package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/naseer2426/rekog/internal/rekogbot"
	"github.com/naseer2426/rekog/internal/telegram"
)

type TelegramWebhook struct {
	Bot         *rekogbot.Bot
	TelegramAPI *telegram.TelegramAPI
	Logger      logrus.FieldLogger
}

func (t *TelegramWebhook) TelegramWebhook(c *gin.Context) {
	requestID := requestid.Get(c)
	message, chatID, err := t.preProcessMsg(c)
	if err != nil {
		t.Logger.WithField("request_id", requestID).Warnf("create rekog message failed %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if message == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	rewritten, changed := t.Bot.HandleMessage(c.Request.Context(), requestID, message)
	if !changed {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := t.TelegramAPI.SendMessage(requestID, chatID, rewritten, message.ID); err != nil {
		t.Logger.WithField("request_id", requestID).Errorf("telegram webhook: failed to send rewritten message: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send rewritten message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (t *TelegramWebhook) parseBody(c *gin.Context) (*telegram.Update, error) {
	var update telegram.Update
	bodyBytes, err := c.GetRawData()
	if err != nil {
		return nil, errors.New("failed to read body")
	}
	if err := json.Unmarshal(bodyBytes, &update); err != nil {
		return nil, fmt.Errorf("invalid payload - %s", string(bodyBytes))
	}

	return &update, nil
}

func (t *TelegramWebhook) preProcessMsg(c *gin.Context) (*rekogbot.Message, int64, error) {
	update, err := t.parseBody(c)
	if err != nil {
		return nil, 0, err
	}
	incoming := update.IncomingMessage()
	if incoming == nil {
		return nil, 0, nil
	}
	// bots ignore each other to avoid reply loops
	if incoming.From != nil && incoming.From.IsBot {
		return nil, 0, nil
	}

	msg := &rekogbot.Message{
		ID:   incoming.MessageID,
		Text: incoming.Text,
	}
	if msg.Text == "" {
		msg.Text = incoming.Caption
	}
	if msg.Text == "" {
		return nil, 0, nil
	}
	if incoming.From != nil {
		msg.From = rekogbot.User{
			ID:       incoming.From.ID,
			Username: incoming.From.Username,
		}
	}
	return msg, incoming.Chat.ID, nil
}
