package dbschema

import (
	"chat-server/internal/domain/user"
	"chat-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(User{})
}

// User represents the persisted profile tied to an external identity subject.
type User struct {
	BaseModel
	PublicID  string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	Subject   string  `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_subject"`
	Email     *string `gorm:"type:varchar(320);uniqueIndex:ux_users_email"`
	Name      *string `gorm:"type:varchar(255)"`
	Anonymous bool    `gorm:"not null;default:false;index:idx_users_anonymous_updated"`
}

// NewSchemaUser converts a domain user into a schema instance.
func NewSchemaUser(u *user.User) *User {
	if u == nil {
		return nil
	}

	return &User{
		BaseModel: BaseModel{
			ID:        u.ID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		PublicID:  u.PublicID,
		Subject:   u.Subject,
		Email:     u.Email,
		Name:      u.Name,
		Anonymous: u.Anonymous,
	}
}

// EtoD converts a schema user back to the domain representation.
func (u *User) EtoD() *user.User {
	if u == nil {
		return nil
	}

	return &user.User{
		ID:        u.ID,
		PublicID:  u.PublicID,
		Subject:   u.Subject,
		Email:     u.Email,
		Name:      u.Name,
		Anonymous: u.Anonymous,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
