package domain

import (
	"github.com/google/wire"

	"chat-server/internal/config"
	"chat-server/internal/domain/chat"
	"chat-server/internal/domain/conversation"
	"chat-server/internal/domain/identity"
	"chat-server/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Identity
	identity.NewResolver,

	// User domain
	user.NewService,

	// Conversation domain
	ProvideConversationConfig,
	conversation.NewService,

	// Chat pipeline
	ProvideChatConfig,
	chat.NewService,
)

func ProvideConversationConfig(cfg *config.Config) conversation.Config {
	return conversation.Config{
		GuestHistoryEnabled: cfg.GuestHistoryEnabled,
	}
}

func ProvideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{
		SystemInstruction: cfg.SystemInstruction,
	}
}
