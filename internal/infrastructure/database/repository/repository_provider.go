package repository

import (
	"chat-server/internal/infrastructure/database/repository/conversationrepo"
	"chat-server/internal/infrastructure/database/repository/messagerepo"
	"chat-server/internal/infrastructure/database/repository/userrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	conversationrepo.NewConversationGormRepository,
	messagerepo.NewMessageGormRepository,
)
