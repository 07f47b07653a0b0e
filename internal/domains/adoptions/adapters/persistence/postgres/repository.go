package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/domain"
	"github.com/Apurer/pawsitive-drive-server/internal/domains/adoptions/ports"
	platformpostgres "github.com/Apurer/pawsitive-drive-server/internal/platform/postgres"
)

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)

// ApplicationRepository persists adoption applications with GORM. db may be a transaction handle.
type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

type applicationRecord struct {
	ID              int64     `gorm:"primaryKey;column:id"`
	PetID           int64     `gorm:"column:pet_id;index;not null"`
	UserID          int64     `gorm:"column:user_id;index;not null"`
	ReviewedBy      *int64    `gorm:"column:reviewed_by"`
	ApplicationDate time.Time `gorm:"column:application_date"`
	Status          string    `gorm:"column:status;type:varchar(16);index"`
}

func (applicationRecord) TableName() string { return "adoption_applications" }

// Models lists the adoption tables for schema migration.
func Models() []any {
	return []any{&applicationRecord{}}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(app)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, platformpostgres.TranslateError(err)
	}
	return record.toDomain(), nil
}

func (r *ApplicationRepository) Update(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(app)
	result := r.db.WithContext(ctx).Model(&applicationRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
		"status":      record.Status,
		"reviewed_by": record.ReviewedBy,
	})
	if result.Error != nil {
		return nil, platformpostgres.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrApplicationNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record applicationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrApplicationNotFound
		}
		return nil, platformpostgres.TranslateError(err)
	}
	return record.toDomain(), nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]*domain.Application, error) {
	return r.find(ctx, r.db)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, userID int64) ([]*domain.Application, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.find(ctx, r.db.Where("user_id = ?", userID))
}

func (r *ApplicationRepository) ListByPet(ctx context.Context, petID int64) ([]*domain.Application, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.find(ctx, r.db.Where("pet_id = ?", petID))
}

func (r *ApplicationRepository) find(ctx context.Context, query *gorm.DB) ([]*domain.Application, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []applicationRecord
	if err := query.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, platformpostgres.TranslateError(err)
	}
	apps := make([]*domain.Application, 0, len(records))
	for i := range records {
		apps = append(apps, records[i].toDomain())
	}
	return apps, nil
}

func (r *ApplicationRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres adoption repository not configured")
	}
	return nil
}

func toRecord(app *domain.Application) applicationRecord {
	return applicationRecord{
		ID:              app.ID,
		PetID:           app.PetID,
		UserID:          app.UserID,
		ReviewedBy:      app.ReviewedBy,
		ApplicationDate: app.ApplicationDate,
		Status:          string(app.Status),
	}
}

func (r applicationRecord) toDomain() *domain.Application {
	app := &domain.Application{
		ID:              r.ID,
		PetID:           r.PetID,
		UserID:          r.UserID,
		ApplicationDate: r.ApplicationDate,
		Status:          domain.Status(r.Status),
	}
	if r.ReviewedBy != nil {
		id := *r.ReviewedBy
		app.ReviewedBy = &id
	}
	return app
}
