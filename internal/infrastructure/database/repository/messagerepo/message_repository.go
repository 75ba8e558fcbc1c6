package messagerepo

import (
	"context"

	"chat-server/internal/domain/conversation"
	"chat-server/internal/infrastructure/database/dbschema"
	"chat-server/internal/infrastructure/database/repository/dberrors"
	"chat-server/internal/infrastructure/database/transaction"
	"chat-server/internal/utils/functional"
)

type MessageGormRepository struct {
	db *transaction.Database
}

var _ conversation.MessageRepository = (*MessageGormRepository)(nil)

func NewMessageGormRepository(db *transaction.Database) conversation.MessageRepository {
	return &MessageGormRepository{db: db}
}

func (repo *MessageGormRepository) Create(ctx context.Context, msg *conversation.Message) error {
	entity := dbschema.NewSchemaMessage(msg)

	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return dberrors.Classify(ctx, err, "failed to create message", "8e4a2f71-0c6d-4b39-a5e8-2d9f7b1c4a60")
	}

	msg.ID = entity.ID
	msg.CreatedAt = entity.CreatedAt
	return nil
}

// ListByConversation returns the conversation's messages oldest first,
// restricted to rows written for the owning user.
func (repo *MessageGormRepository) ListByConversation(ctx context.Context, conversationID, userID uint) ([]*conversation.Message, error) {
	var entities []dbschema.Message
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Order("created_at ASC, id ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, dberrors.Classify(ctx, err, "failed to list messages", "5c9e1b37-4a82-4d60-b7f5-8e0a3d6c2f91")
	}

	return functional.Map(entities, func(e dbschema.Message) *conversation.Message {
		return e.EtoD()
	}), nil
}
