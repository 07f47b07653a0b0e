package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/registry/ports"
	platformpostgres "github.com/Apurer/pawsitive-drive-server/internal/platform/postgres"
	sharederrors "github.com/Apurer/pawsitive-drive-server/internal/shared/errors"
)

var (
	_ ports.UserRepository = (*UserRepository)(nil)
	_ ports.PetRepository  = (*PetRepository)(nil)
	_ ports.RoleRepository = (*RoleRepository)(nil)
)

var errNotConfigured = errors.New("postgres registry repository not configured")

// UserRepository persists users with GORM. db may be a transaction handle.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	record := toUserRecord(user)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, userWriteError(err)
	}
	return record.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	record := toUserRecord(user)
	result := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"name":           record.Name,
		"email":          record.Email,
		"status":         record.Status,
		"contact_number": record.ContactNumber,
		"address":        record.Address,
		"role_id":        record.RoleID,
	})
	if result.Error != nil {
		return nil, userWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrUserNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, ports.ErrUserNotFound)
	}
	return record.toDomain(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "email = ?", strings.TrimSpace(email)).Error; err != nil {
		return nil, notFoundOr(err, ports.ErrUserNotFound)
	}
	return record.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, platformpostgres.TranslateError(err)
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

// PetRepository persists pets with GORM.
type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	record := toPetRecord(pet)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, platformpostgres.TranslateError(err)
	}
	return record.toDomain(), nil
}

func (r *PetRepository) Update(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	record := toPetRecord(pet)
	result := r.db.WithContext(ctx).Model(&petRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"name":        record.Name,
		"species":     record.Species,
		"breed":       record.Breed,
		"age":         record.Age,
		"gender":      record.Gender,
		"status":      record.Status,
		"description": record.Description,
		"image_url":   record.ImageURL,
	})
	if result.Error != nil {
		return nil, platformpostgres.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrPetNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *PetRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, ports.ErrPetNotFound)
	}
	return record.toDomain(), nil
}

// GetForUpdate takes a row lock so concurrent approvals of the same pet serialise.
func (r *PetRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Pet, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var record petRecord
	if err := platformpostgres.LockForUpdate(r.db.WithContext(ctx)).First(&record, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, ports.ErrPetNotFound)
	}
	return record.toDomain(), nil
}

func (r *PetRepository) List(ctx context.Context, filter domain.PetFilter) ([]*domain.Pet, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	query := r.db.WithContext(ctx).Order("id")
	if species := strings.TrimSpace(filter.Species); species != "" {
		query = query.Where("LOWER(species) = ?", strings.ToLower(species))
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("LOWER(status) = ?", strings.ToLower(status))
	}
	var records []petRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, platformpostgres.TranslateError(err)
	}
	pets := make([]*domain.Pet, 0, len(records))
	for i := range records {
		pets = append(pets, records[i].toDomain())
	}
	return pets, nil
}

// RoleRepository persists roles with GORM. Uniqueness is enforced on the case-folded name.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	record := roleRecord{ID: role.ID, Name: role.Name, NameKey: domain.RoleKey(role.Name)}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		err = platformpostgres.TranslateError(err)
		if errors.Is(err, sharederrors.ErrConflict) {
			return nil, ports.ErrRoleExists
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var record roleRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, ports.ErrRoleNotFound)
	}
	return record.toDomain(), nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var record roleRecord
	if err := r.db.WithContext(ctx).First(&record, "name_key = ?", domain.RoleKey(name)).Error; err != nil {
		return nil, notFoundOr(err, ports.ErrRoleNotFound)
	}
	return record.toDomain(), nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	if r == nil || r.db == nil {
		return nil, errNotConfigured
	}
	var records []roleRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, platformpostgres.TranslateError(err)
	}
	roles := make([]*domain.Role, 0, len(records))
	for i := range records {
		roles = append(roles, records[i].toDomain())
	}
	return roles, nil
}

func notFoundOr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return platformpostgres.TranslateError(err)
}

func userWriteError(err error) error {
	err = platformpostgres.TranslateError(err)
	if errors.Is(err, sharederrors.ErrConflict) {
		return ports.ErrEmailTaken
	}
	return err
}
