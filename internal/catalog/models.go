// Package catalog reads the relational vehicle catalog. The catalog is a
// separate Postgres database maintained outside this service; this
// package flattens its brand/model/trim rows into the shapes the public
// API serves.
package catalog

import (
	"time"

	"github.com/lib/pq"
)

// Brand is a manufacturer row.
type Brand struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:120;not null;uniqueIndex" json:"name"`
	Slug      string `gorm:"size:160;not null;uniqueIndex" json:"slug"`
	Country   string `gorm:"size:80" json:"country,omitempty"`
	LogoURL   string `gorm:"size:500" json:"logo_url,omitempty"`
	Active    bool   `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Model is a vehicle line under a brand. YearFrom/YearTo bound the
// production range; YearTo zero means still in production.
type Model struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	BrandID   uint   `gorm:"not null;index" json:"brand_id"`
	Brand     Brand  `json:"-"`
	Name      string `gorm:"size:120;not null" json:"name"`
	Slug      string `gorm:"size:160;index" json:"slug"`
	Segment   string `gorm:"size:40" json:"segment,omitempty"`
	YearFrom  int    `json:"year_from"`
	YearTo    int    `json:"year_to,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Trim is the sellable unit. Price is stored as text in the upstream
// schema, so it stays a string here and is coerced on the way out.
type Trim struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ModelID      uint           `gorm:"not null;index" json:"model_id"`
	Model        Model          `json:"-"`
	Name         string         `gorm:"size:120;not null" json:"name"`
	Price        string         `gorm:"size:40" json:"price"`
	Engine       string         `gorm:"size:80" json:"engine,omitempty"`
	Horsepower   int            `json:"horsepower,omitempty"`
	Transmission string         `gorm:"size:40" json:"transmission,omitempty"`
	Fuel         string         `gorm:"size:40" json:"fuel,omitempty"`
	Features     pq.StringArray `gorm:"type:text[]" json:"features,omitempty"`
	Images       pq.StringArray `gorm:"type:text[]" json:"images,omitempty"`
	Featured     bool           `gorm:"index" json:"featured"`
	CreatedAt    time.Time      `json:"-"`
	UpdatedAt    time.Time      `json:"-"`
}

// CatalogLead mirrors the lead rows the upstream sales tooling reads.
// Leads are written to both backends; this side feeds the dealer CRM.
type CatalogLead struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	TrimID    uint   `gorm:"index" json:"trim_id"`
	Reference string `gorm:"size:40;index" json:"reference"`
	Name      string `gorm:"size:160;not null" json:"name"`
	Email     string `gorm:"size:160;not null" json:"email"`
	Phone     string `gorm:"size:40" json:"phone,omitempty"`
	Message   string `gorm:"type:text" json:"message,omitempty"`
	Status    string `gorm:"size:20;default:new" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (CatalogLead) TableName() string { return "leads" }

// CatalogReview is an editorial review row maintained by the content
// team on the relational side, separate from user review posts.
type CatalogReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TrimID    uint      `gorm:"index" json:"trim_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Summary   string    `gorm:"type:text" json:"summary,omitempty"`
	Author    string    `gorm:"size:120" json:"author,omitempty"`
	Rating    float64   `json:"rating"`
	ImageURL  string    `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (CatalogReview) TableName() string { return "reviews" }

// CatalogCommunity is the read-side community listing.
type CatalogCommunity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:160;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	MemberCount int       `json:"member_count"`
	ImageURL    string    `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"-"`
}

func (CatalogCommunity) TableName() string { return "communities" }

// CatalogEvent is the read-side event listing. Date is a YYYY-MM-DD
// string in the upstream schema.
type CatalogEvent struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Date     string `gorm:"size:10;index" json:"date"`
	Location string `gorm:"size:300" json:"location,omitempty"`
	ImageURL string `gorm:"size:500" json:"image_url,omitempty"`
}

func (CatalogEvent) TableName() string { return "events" }

// Car is the flattened public shape for one trim: the row joined up
// through model and brand, with the price coerced to a number.
type Car struct {
	ID           uint     `json:"id"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Trim         string   `json:"trim"`
	Segment      string   `json:"segment,omitempty"`
	YearFrom     int      `json:"year_from"`
	YearTo       int      `json:"year_to,omitempty"`
	Engine       string   `json:"engine,omitempty"`
	Horsepower   int      `json:"horsepower,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	Fuel         string   `json:"fuel,omitempty"`
	Features     []string `json:"features,omitempty"`
	Images       []string `json:"images,omitempty"`
	Featured     bool     `json:"featured"`
	Price        float64  `json:"price"`
}
