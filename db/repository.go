package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/habedi/prodcat/catalog"
	"gorm.io/gorm"
)

// ProductRepository defines decoupled operations for product persistence.
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	ListAvailable(ctx context.Context) ([]Product, error)
	ListSelected(ctx context.Context) ([]Product, error)
	SearchByName(ctx context.Context, nameSubstr string) ([]Product, error)
	GetByID(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int) error
	Clear(ctx context.Context) error
}

// gormProductRepo is a GORM-backed implementation of ProductRepository.
// Use constructor NewProductRepository to obtain an instance.
type gormProductRepo struct{ db *gorm.DB }

// NewProductRepository creates a ProductRepository. Accepts *gorm.DB to avoid global access.
func NewProductRepository(db *gorm.DB) ProductRepository { return &gormProductRepo{db: db} }

var errNotInitialized = fmt.Errorf("repository not initialized")

func (r *gormProductRepo) find(ctx context.Context, query string, args ...any) ([]Product, error) {
	if r.db == nil {
		return nil, errNotInitialized
	}
	tx := r.db.WithContext(ctx).Order("id")
	if query != "" {
		tx = tx.Where(query, args...)
	}
	var products []Product
	if err := tx.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *gormProductRepo) List(ctx context.Context) ([]Product, error) {
	return r.find(ctx, "")
}

func (r *gormProductRepo) ListAvailable(ctx context.Context) ([]Product, error) {
	return r.find(ctx, "available = ?", true)
}

func (r *gormProductRepo) ListSelected(ctx context.Context) ([]Product, error) {
	return r.find(ctx, "selected = ?", true)
}

// SearchByName matches a substring of the name, ignoring case. An empty substring matches all.
func (r *gormProductRepo) SearchByName(ctx context.Context, nameSubstr string) ([]Product, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(nameSubstr)) + "%"
	return r.find(ctx, `LOWER(name) LIKE ? ESCAPE '\'`, pattern)
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (r *gormProductRepo) GetByID(ctx context.Context, id int) (*Product, error) {
	if r.db == nil {
		return nil, errNotInitialized
	}
	var product Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts p and sets its ID. A non-zero ID is kept as given.
func (r *gormProductRepo) Create(ctx context.Context, p *Product) error {
	if r.db == nil {
		return errNotInitialized
	}
	return r.db.WithContext(ctx).Create(p).Error
}

// Update overwrites every column of the row with p.ID.
func (r *gormProductRepo) Update(ctx context.Context, p *Product) error {
	if r.db == nil {
		return errNotInitialized
	}
	res := r.db.WithContext(ctx).Model(&Product{}).Where("id = ?", p.ID).
		Select("name", "price", "quantity", "available", "selected").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", catalog.ErrNotFound, p.ID)
	}
	return nil
}

func (r *gormProductRepo) Delete(ctx context.Context, id int) error {
	if r.db == nil {
		return errNotInitialized
	}
	res := r.db.WithContext(ctx).Delete(&Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", catalog.ErrNotFound, id)
	}
	return nil
}

func (r *gormProductRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return errNotInitialized
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Product{}).Error
}
