package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Service wraps the catalog database handle.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Migrate creates the catalog tables when they do not exist. The schema
// is normally owned by the upstream importer; this keeps dev and test
// databases usable without it.
func (s *Service) Migrate() error {
	return s.db.AutoMigrate(&Brand{}, &Model{}, &Trim{}, &CatalogLead{},
		&CatalogReview{}, &CatalogCommunity{}, &CatalogEvent{})
}

// FetchBrands returns all brands sorted by name.
func (s *Service) FetchBrands(ctx context.Context) ([]Brand, error) {
	var brands []Brand
	err := s.db.WithContext(ctx).Order("name asc").Find(&brands).Error
	if err != nil {
		return nil, err
	}
	return brands, nil
}

// FetchModels returns models, optionally limited to one brand.
func (s *Service) FetchModels(ctx context.Context, brandID uint) ([]Model, error) {
	q := s.db.WithContext(ctx).Order("name asc")
	if brandID != 0 {
		q = q.Where("brand_id = ?", brandID)
	}
	var ms []Model
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

// CarFilter narrows FetchCars. Zero values are ignored.
type CarFilter struct {
	BrandID  uint
	ModelID  uint
	MaxPrice float64
}

// FetchCars returns the flattened car list, newest rows first. Trims are
// loaded with their model and brand joined in; MaxPrice filters after the
// flatten because price is text in the upstream schema.
func (s *Service) FetchCars(ctx context.Context, f CarFilter) ([]Car, error) {
	q := s.db.WithContext(ctx).
		Preload("Model").
		Preload("Model.Brand").
		Order("created_at desc")
	if f.ModelID != 0 {
		q = q.Where("model_id = ?", f.ModelID)
	} else if f.BrandID != 0 {
		q = q.Joins("JOIN models ON models.id = trims.model_id").
			Where("models.brand_id = ?", f.BrandID)
	}

	var trims []Trim
	if err := q.Find(&trims).Error; err != nil {
		return nil, err
	}

	cars := make([]Car, 0, len(trims))
	for _, t := range trims {
		c := flatten(t)
		if f.MaxPrice > 0 && c.Price > f.MaxPrice {
			continue
		}
		cars = append(cars, c)
	}
	return cars, nil
}

// FetchCarByID returns one flattened car, or (nil, nil) when the ID does
// not exist.
func (s *Service) FetchCarByID(ctx context.Context, id uint) (*Car, error) {
	var t Trim
	err := s.db.WithContext(ctx).
		Preload("Model").
		Preload("Model.Brand").
		First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c := flatten(t)
	return &c, nil
}

// FetchReviews returns editorial reviews, newest first.
func (s *Service) FetchReviews(ctx context.Context) ([]CatalogReview, error) {
	var reviews []CatalogReview
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// FetchCommunities returns community listings, largest first.
func (s *Service) FetchCommunities(ctx context.Context) ([]CatalogCommunity, error) {
	var communities []CatalogCommunity
	err := s.db.WithContext(ctx).Order("member_count desc").Find(&communities).Error
	if err != nil {
		return nil, err
	}
	return communities, nil
}

// FetchEvents returns event listings ascending by date.
func (s *Service) FetchEvents(ctx context.Context) ([]CatalogEvent, error) {
	var events []CatalogEvent
	err := s.db.WithContext(ctx).Order("date asc").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// SubmitLead copies a captured lead into the catalog side for the dealer
// tooling and returns the stored row.
func (s *Service) SubmitLead(ctx context.Context, l CatalogLead) (CatalogLead, error) {
	if l.Status == "" {
		l.Status = "new"
	}
	if err := s.db.WithContext(ctx).Create(&l).Error; err != nil {
		return CatalogLead{}, err
	}
	return l, nil
}

// flatten joins a preloaded trim up through model and brand into the
// public car shape.
func flatten(t Trim) Car {
	return Car{
		ID:           t.ID,
		Brand:        t.Model.Brand.Name,
		Model:        t.Model.Name,
		Trim:         t.Name,
		Segment:      t.Model.Segment,
		YearFrom:     t.Model.YearFrom,
		YearTo:       t.Model.YearTo,
		Engine:       t.Engine,
		Horsepower:   t.Horsepower,
		Transmission: t.Transmission,
		Fuel:         t.Fuel,
		Features:     t.Features,
		Images:       t.Images,
		Featured:     t.Featured,
		Price:        parsePrice(t.Price),
	}
}

// parsePrice coerces the upstream text price to a float. Currency
// symbols and thousands separators are tolerated; anything unparseable
// comes out as 0.
func parsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
