package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/kitelabs/kitebot-api/internal/config"
	"github.com/kitelabs/kitebot-api/internal/models"
)

type Notifier interface {
	NotifyRegistration(user models.User) error
	NotifyFeedback(user models.User, feedback models.Feedback) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(cfg *config.Config) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" {
		return nil, fmt.Errorf("discord bot token is empty")
	}
	if cfg.DiscordNotificationsChannelID == "" {
		return nil, fmt.Errorf("discord channel ID is empty")
	}

	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, err
	}

	return &DiscordNotifier{
		session:   session,
		channelID: cfg.DiscordNotificationsChannelID,
	}, nil
}

func (n *DiscordNotifier) NotifyRegistration(user models.User) error {
	message := fmt.Sprintf("🔑 **New Trial Registration**\n**User:** %s\n**Email:** %s",
		user.Username,
		user.Email,
	)
	return n.send(message)
}

func (n *DiscordNotifier) NotifyFeedback(user models.User, feedback models.Feedback) error {
	message := fmt.Sprintf("💬 **New Feedback**\n**User:** %s\n**Type:** %s\n**Content:** %s",
		user.Username,
		feedback.Type,
		feedback.Content,
	)
	return n.send(message)
}

func (n *DiscordNotifier) send(message string) error {
	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}
	return nil
}
