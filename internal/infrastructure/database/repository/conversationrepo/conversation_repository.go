package conversationrepo

import (
	"context"
	"time"

	"chat-server/internal/domain/conversation"
	"chat-server/internal/infrastructure/database/dbschema"
	"chat-server/internal/infrastructure/database/repository/dberrors"
	"chat-server/internal/infrastructure/database/transaction"
	"chat-server/internal/utils/functional"
)

type ConversationGormRepository struct {
	db *transaction.Database
}

var _ conversation.Repository = (*ConversationGormRepository)(nil)

func NewConversationGormRepository(db *transaction.Database) conversation.Repository {
	return &ConversationGormRepository{db: db}
}

func (repo *ConversationGormRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	entity := dbschema.NewSchemaConversation(conv)

	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return dberrors.Classify(ctx, err, "failed to create conversation", "7d2e9b54-1c8a-4f63-b0d7-5e3a8c1f6b29")
	}

	conv.ID = entity.ID
	conv.CreatedAt = entity.CreatedAt
	conv.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *ConversationGormRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	var entity dbschema.Conversation
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if err != nil {
		return nil, dberrors.Classify(ctx, err, "failed to find conversation by public ID", "e5a1d8c3-6f20-4b97-9c4e-8d2b5a7f1c30")
	}
	return entity.EtoD(), nil
}

func (repo *ConversationGormRepository) ListByUserID(ctx context.Context, userID uint) ([]*conversation.Conversation, error) {
	var entities []dbschema.Conversation
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, dberrors.Classify(ctx, err, "failed to list conversations", "0b8f3d61-2a95-4c78-8e1b-6d4a9f2c5e07")
	}

	return functional.Map(entities, func(e dbschema.Conversation) *conversation.Conversation {
		return e.EtoD()
	}), nil
}

func (repo *ConversationGormRepository) Update(ctx context.Context, conv *conversation.Conversation) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", conv.ID).
		Updates(map[string]any{
			"title":      conv.Title,
			"updated_at": conv.UpdatedAt,
		}).Error
	if err != nil {
		return dberrors.Classify(ctx, err, "failed to update conversation", "94c7e2a0-5b1d-4f86-a3c9-7e0d8b5f2a61")
	}
	return nil
}

func (repo *ConversationGormRepository) Delete(ctx context.Context, id uint) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&dbschema.Conversation{}).
		Error
	if err != nil {
		return dberrors.Classify(ctx, err, "failed to delete conversation", "1f6b9e48-3d72-4a05-b8f1-9c2e5d7a3f84")
	}
	return nil
}

func (repo *ConversationGormRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", at).
		Error
	if err != nil {
		return dberrors.Classify(ctx, err, "failed to touch conversation", "6a3d8f25-7c91-4e40-9b6d-0e8f4a2c7b53")
	}
	return nil
}
