package domain

import "time"

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

type Category struct {
	ID   uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
}

type Product struct {
	ID            uint64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string        `json:"name" gorm:"type:varchar(255);not null"`
	Description   string        `json:"description" gorm:"type:text"`
	Price         float64       `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice float64       `json:"originalPrice" gorm:"type:decimal(10,2)"`
	ImageURL      string        `json:"image" gorm:"type:varchar(500)"`
	CategoryID    *uint64       `json:"categoryId" gorm:"index"`
	StockQuantity int           `json:"stockQuantity" gorm:"not null;default:0"`
	Status        ProductStatus `json:"status" gorm:"type:enum('active','inactive');default:'active';index"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"autoCreateTime"`
}

type Review struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID uint64    `json:"productId" gorm:"not null;index"`
	UserID    uint64    `json:"userId" gorm:"not null;index"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// CatalogEntry is the storefront read model: a product joined with its
// category name and review aggregate.
type CatalogEntry struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	Image         string    `json:"image"`
	Category      string    `json:"category"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	InStock       bool      `json:"inStock"`
	StockQuantity int       `json:"stockQuantity"`
	CreatedAt     time.Time `json:"createdAt"`
}
