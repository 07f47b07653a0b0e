package postgres

import (
	"time"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
)

type userRecord struct {
	ID             int64     `gorm:"primaryKey;column:id"`
	Name           string    `gorm:"column:name;not null"`
	Email          string    `gorm:"column:email;size:320;uniqueIndex;not null"`
	CredentialHash string    `gorm:"column:password_hash;size:255"`
	RoleID         int64     `gorm:"column:role_id;index"`
	Status         string    `gorm:"column:status;type:varchar(16)"`
	ContactNumber  string    `gorm:"column:contact_number"`
	Address        string    `gorm:"column:address"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (userRecord) TableName() string { return "users" }

type petRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name;not null"`
	Species     string    `gorm:"column:species;index"`
	Breed       string    `gorm:"column:breed"`
	Age         int       `gorm:"column:age"`
	Gender      string    `gorm:"column:gender;type:varchar(16)"`
	Status      string    `gorm:"column:status;type:varchar(32);index"`
	Description string    `gorm:"column:description"`
	ImageURL    string    `gorm:"column:image_url"`
	AddedBy     int64     `gorm:"column:added_by;index;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (petRecord) TableName() string { return "pets" }

type roleRecord struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	Name    string `gorm:"column:name;not null"`
	NameKey string `gorm:"column:name_key;size:64;uniqueIndex;not null"`
}

func (roleRecord) TableName() string { return "roles" }

func toUserRecord(user *domain.User) userRecord {
	return userRecord{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		CredentialHash: user.CredentialHash,
		RoleID:         user.RoleID,
		Status:         string(user.Status),
		ContactNumber:  user.ContactNumber,
		Address:        user.Address,
		CreatedAt:      user.CreatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		CredentialHash: r.CredentialHash,
		RoleID:         r.RoleID,
		Status:         domain.UserStatus(r.Status),
		ContactNumber:  r.ContactNumber,
		Address:        r.Address,
		CreatedAt:      r.CreatedAt,
	}
}

func toPetRecord(pet *domain.Pet) petRecord {
	return petRecord{
		ID:          pet.ID,
		Name:        pet.Name,
		Species:     pet.Species,
		Breed:       pet.Breed,
		Age:         pet.Age,
		Gender:      pet.Gender,
		Status:      string(pet.Status),
		Description: pet.Description,
		ImageURL:    pet.ImageURL,
		AddedBy:     pet.AddedBy,
		CreatedAt:   pet.CreatedAt,
	}
}

func (r petRecord) toDomain() *domain.Pet {
	return &domain.Pet{
		ID:          r.ID,
		Name:        r.Name,
		Species:     r.Species,
		Breed:       r.Breed,
		Age:         r.Age,
		Gender:      r.Gender,
		Status:      domain.PetStatus(r.Status),
		Description: r.Description,
		ImageURL:    r.ImageURL,
		AddedBy:     r.AddedBy,
		CreatedAt:   r.CreatedAt,
	}
}

func (r roleRecord) toDomain() *domain.Role {
	return &domain.Role{ID: r.ID, Name: r.Name}
}

// Models lists the registry tables for schema migration.
func Models() []any {
	return []any{&roleRecord{}, &userRecord{}, &petRecord{}}
}
