package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PennitApp/Pennit/internal/pkg/shortener"
)

const (
	CategoryPoem       = "poem"
	CategoryShortStory = "short_story"
	CategoryNovel      = "novel"
)

const (
	WorkStatusDraft     = "draft"
	WorkStatusPending   = "pending"
	WorkStatusPublished = "published"
	WorkStatusRejected  = "rejected"
)

// Work is a published or in-progress piece of writing (poem, short story,
// novel). Body holds the rich-text HTML produced by the editor.
type Work struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	UUID            string `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	UserID          uint   `gorm:"index" json:"user_id"`
	User            User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title           string `gorm:"type:varchar(255)" json:"title" validate:"required,min=1,max=255"`
	Synopsis        string `gorm:"type:text" json:"synopsis" validate:"max=2000"`
	Body            string `gorm:"type:longtext" json:"body"`
	Category        string `gorm:"type:varchar(50);index" json:"category" validate:"oneof=poem short_story novel"`
	Status          string `gorm:"type:varchar(50);default:'draft';index" json:"status" validate:"oneof=draft pending published rejected"`
	ShareLink       string `gorm:"type:varchar(255) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex" json:"share_link"`
	ReadCount       uint   `gorm:"default:0" json:"read_count"`
	ImpressionCount uint   `gorm:"default:0" json:"impression_count"`
	ClapCount       uint   `gorm:"default:0" json:"clap_count"`
	PublishedAt     *time.Time `gorm:"type:timestamp;default:null" json:"published_at"`
	// relations
	Comments  []Comment      `gorm:"foreignKey:WorkID" json:"comments,omitempty"`
	Claps     []Clap         `gorm:"foreignKey:WorkID" json:"claps,omitempty"`
	Saves     []Save         `gorm:"foreignKey:WorkID" json:"saves,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate is called before a new record is inserted
func (w *Work) BeforeCreate(tx *gorm.DB) error {
	if w.UUID == "" {
		w.UUID = uuid.New().String()
	}

	// ShareLink needs the row ID, so set a placeholder first
	if w.ShareLink == "" {
		w.ShareLink = "temp"
	}

	return nil
}

// AfterCreate is called after a new record was inserted
func (w *Work) AfterCreate(tx *gorm.DB) error {
	if w.ShareLink == "temp" {
		slug, err := shortener.GenerateSecureSlug(10)
		if err != nil {
			// Fall back to the deterministic ID encoding
			slug = shortener.EncodeID(w.ID)
		}
		w.ShareLink = slug
		return tx.Model(w).Update("share_link", w.ShareLink).Error
	}
	return nil
}

func (w *Work) Validate() error {
	v := validator.New()

	return v.Struct(w)
}

// IsPublished reports whether the work is visible to readers
func (w *Work) IsPublished() bool {
	return w.Status == WorkStatusPublished
}

// IsValidCategory reports whether c is a known work category
func IsValidCategory(c string) bool {
	switch c {
	case CategoryPoem, CategoryShortStory, CategoryNovel:
		return true
	}
	return false
}
