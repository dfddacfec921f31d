package models

import (
	"time"

	"github.com/tailorline/storefront/pkg/enums"
)

// CustomTailoring is a submitted set of body measurements and style choices.
type CustomTailoring struct {
	ID                    int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Name                  string            `gorm:"column:name;not null"`
	Phone                 string            `gorm:"column:phone;size:20;not null"`
	Email                 string            `gorm:"column:email;not null"`
	Chest                 float64           `gorm:"column:chest;not null"`
	Waist                 float64           `gorm:"column:waist;not null"`
	ArmLength             float64           `gorm:"column:arm_length;not null"`
	Shoulder              float64           `gorm:"column:shoulder;not null"`
	Size                  enums.SuitSize    `gorm:"column:size;not null"`
	Color                 string            `gorm:"column:color;size:50;not null"`
	FitStyle              enums.FitStyle    `gorm:"column:fit_style;not null"`
	BottomStyle           enums.BottomStyle `gorm:"column:bottom_style;not null;default:trouser"`
	Fabric                enums.Fabric      `gorm:"column:fabric;not null"`
	Lapels                enums.Lapels      `gorm:"column:lapels;not null"`
	IsWomensSuit          bool              `gorm:"column:is_womens_suit;not null;default:false"`
	AdditionalDescription *string           `gorm:"column:additional_description;size:1000"`
	ImageURL              *string           `gorm:"column:image_url"`
	CreatedAt             time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the plural used by the SQL migrations.
func (CustomTailoring) TableName() string { return "custom_tailorings" }
