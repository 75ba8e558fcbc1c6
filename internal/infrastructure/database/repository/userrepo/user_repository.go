package userrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"chat-server/internal/domain/user"
	"chat-server/internal/infrastructure/database/dbschema"
	"chat-server/internal/infrastructure/database/repository/dberrors"
	"chat-server/internal/infrastructure/database/transaction"
)

type UserGormRepository struct {
	db *transaction.Database
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *transaction.Database) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) FindBySubject(ctx context.Context, subject string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("subject = ?", subject).
		First(&entity).
		Error
	if err != nil {
		return nil, dberrors.Classify(ctx, err, "failed to find user by subject", "b2a7c2d5-53b2-44a3-8f8f-927f94e9a4db")
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		return nil, dberrors.Classify(ctx, err, "failed to find user by ID", "a9d3f8e4-21c7-4f5b-9a2e-6d8f9e1a2b3c")
	}
	return entity.EtoD(), nil
}

// Create inserts the profile row. It deliberately issues a plain INSERT so
// concurrent provisioning races surface as a Conflict the caller recovers
// from by re-reading; no ON CONFLICT clause is used.
func (repo *UserGormRepository) Create(ctx context.Context, usr *user.User) error {
	entity := dbschema.NewSchemaUser(usr)

	if err := repo.db.GetTx(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return dberrors.Classify(ctx, err, "failed to create user", "3b31d2bd-3260-4233-b0c8-09909fa0f154")
	}

	usr.ID = entity.ID
	usr.CreatedAt = entity.CreatedAt
	usr.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *UserGormRepository) Update(ctx context.Context, usr *user.User) error {
	err := repo.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.User{}).
		Where("id = ?", usr.ID).
		Updates(map[string]any{
			"email":      usr.Email,
			"name":       usr.Name,
			"anonymous":  usr.Anonymous,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
	if err != nil {
		return dberrors.Classify(ctx, err, "failed to update user", "f71f98cb-3154-4ad2-9076-7e58628a4098")
	}
	return nil
}

// DeleteGuestsInactiveSince removes anonymous profiles with no activity
// since the cutoff. A profile row rarely changes after provisioning, so
// idleness also considers the guest's conversations: anyone with a
// conversation updated at or after the cutoff is kept. Conversations and
// messages of purged guests are removed by cascade.
func (repo *UserGormRepository) DeleteGuestsInactiveSince(ctx context.Context, cutoff time.Time) (int64, error) {
	recentActivity := repo.db.GetTx(ctx).
		Model(&dbschema.Conversation{}).
		Select("1").
		Where("conversations.user_id = users.id AND conversations.updated_at >= ?", cutoff)

	result := repo.db.GetTx(ctx).WithContext(ctx).
		Where("anonymous = ? AND updated_at < ?", true, cutoff).
		Where("NOT EXISTS (?)", recentActivity).
		Delete(&dbschema.User{})
	if result.Error != nil {
		return 0, dberrors.Classify(ctx, result.Error, "failed to delete stale guest users", "c8e1a5f2-9d47-4b36-a0e8-3f7b2c6d9e14")
	}
	return result.RowsAffected, nil
}
