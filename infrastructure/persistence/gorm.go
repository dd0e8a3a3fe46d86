package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teacherlog/teacherlog/domain/contribution"
)

// contributionRow is the relational row shape for a contribution record.
// The three indexes mirror the ones the Mongo store establishes.
type contributionRow struct {
	ID               string    `gorm:"column:id;primaryKey"`
	Date             string    `gorm:"column:date;index:idx_contributions_date,sort:desc"`
	ContributionType string    `gorm:"column:contribution_type;index:idx_contributions_type"`
	Reference        *string   `gorm:"column:reference"`
	TimeSpent        int       `gorm:"column:time_spent"`
	Description      string    `gorm:"column:description"`
	InputMode        string    `gorm:"column:input_mode"`
	CreatedAt        time.Time `gorm:"column:created_at;index:idx_contributions_created_at,sort:desc"`
}

// TableName keeps the table name aligned with the Mongo collection.
func (contributionRow) TableName() string { return CollectionName }

func (r contributionRow) toDomain() contribution.Contribution {
	var ref string
	if r.Reference != nil {
		ref = *r.Reference
	}
	return contribution.Restore(
		r.ID,
		r.Date,
		contribution.Type(r.ContributionType),
		ref,
		r.TimeSpent,
		r.Description,
		contribution.InputMode(r.InputMode),
		r.CreatedAt,
	)
}

func toRow(c contribution.Contribution) contributionRow {
	var ref *string
	if c.Reference() != "" {
		r := c.Reference()
		ref = &r
	}
	return contributionRow{
		ID:               c.ID(),
		Date:             c.Date(),
		ContributionType: string(c.ContributionType()),
		Reference:        ref,
		TimeSpent:        c.TimeSpent(),
		Description:      c.Description(),
		InputMode:        string(c.InputMode()),
		CreatedAt:        c.CreatedAt(),
	}
}

// GormStore implements Store on a relational database through GORM.
// Identifiers are UUID strings assigned at insert time.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open GORM handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ValidateID reports ErrInvalidID when id is not a valid UUID.
func (s *GormStore) ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// Insert stores the record under a fresh UUID and re-fetches it.
func (s *GormStore) Insert(ctx context.Context, c contribution.Contribution) (contribution.Contribution, error) {
	row := toRow(c)
	row.ID = uuid.NewString()

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return contribution.Contribution{}, fmt.Errorf("insert contribution: %w", err)
	}
	return s.Get(ctx, row.ID)
}

// List returns up to ListLimit records sorted by date descending.
func (s *GormStore) List(ctx context.Context) ([]contribution.Contribution, error) {
	var rows []contributionRow
	err := s.db.WithContext(ctx).
		Order("date DESC").
		Limit(ListLimit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}

	records := make([]contribution.Contribution, len(rows))
	for i, r := range rows {
		records[i] = r.toDomain()
	}
	return records, nil
}

// Get returns the record with the given identifier.
func (s *GormStore) Get(ctx context.Context, id string) (contribution.Contribution, error) {
	var row contributionRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return contribution.Contribution{}, ErrNotFound
	}
	if err != nil {
		return contribution.Contribution{}, fmt.Errorf("find contribution: %w", err)
	}
	return row.toDomain(), nil
}

// Update applies the partial field set and returns the refreshed record.
func (s *GormStore) Update(ctx context.Context, id string, fields map[string]any) (contribution.Contribution, error) {
	// Existence is checked first: RowsAffected cannot distinguish a
	// missing row from an update that left identical values in place.
	if _, err := s.Get(ctx, id); err != nil {
		return contribution.Contribution{}, err
	}

	err := s.db.WithContext(ctx).
		Model(&contributionRow{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return contribution.Contribution{}, fmt.Errorf("update contribution: %w", err)
	}

	return s.Get(ctx, id)
}

// Delete removes the record with the given identifier.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&contributionRow{})
	if result.Error != nil {
		return fmt.Errorf("delete contribution: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes migrates the table; the index definitions live on the
// row struct tags.
func (s *GormStore) EnsureIndexes(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&contributionRow{}); err != nil {
		return fmt.Errorf("migrate contributions table: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *GormStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ Store = (*GormStore)(nil)
