package tailoring

import (
	"time"

	"github.com/tailorline/storefront/pkg/db/models"
	"github.com/tailorline/storefront/pkg/enums"
)

// Input is the measurement form after multipart parsing.
type Input struct {
	Name                  string  `json:"name" validate:"required,max=255"`
	Phone                 string  `json:"phone" validate:"required,max=20"`
	Email                 string  `json:"email" validate:"required,email,max=255"`
	Chest                 float64 `json:"chest" validate:"gt=0"`
	Waist                 float64 `json:"waist" validate:"gt=0"`
	ArmLength             float64 `json:"arm_length" validate:"gt=0"`
	Shoulder              float64 `json:"shoulder" validate:"gt=0"`
	Size                  string  `json:"size" validate:"required,suit_size"`
	Color                 string  `json:"color" validate:"required,max=50"`
	FitStyle              string  `json:"fit_style" validate:"required,fit_style"`
	BottomStyle           string  `json:"bottom_style" validate:"required_if=IsWomensSuit true,omitempty,bottom_style"`
	Fabric                string  `json:"fabric" validate:"required,fabric"`
	Lapels                string  `json:"lapels" validate:"required,lapels"`
	IsWomensSuit          bool    `json:"is_womens_suit"`
	AdditionalDescription string  `json:"additional_description" validate:"max=1000"`
}

// RecordDTO is a saved measurement form.
type RecordDTO struct {
	ID                    int64             `json:"id"`
	Name                  string            `json:"name"`
	Phone                 string            `json:"phone"`
	Email                 string            `json:"email"`
	Chest                 float64           `json:"chest"`
	Waist                 float64           `json:"waist"`
	ArmLength             float64           `json:"arm_length"`
	Shoulder              float64           `json:"shoulder"`
	Size                  enums.SuitSize    `json:"size"`
	Color                 string            `json:"color"`
	FitStyle              enums.FitStyle    `json:"fit_style"`
	BottomStyle           enums.BottomStyle `json:"bottom_style"`
	Fabric                enums.Fabric      `json:"fabric"`
	Lapels                enums.Lapels      `json:"lapels"`
	IsWomensSuit          bool              `json:"is_womens_suit"`
	AdditionalDescription string            `json:"additional_description"`
	ImageURL              string            `json:"image_url,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
}

func toDTO(m models.CustomTailoring) RecordDTO {
	dto := RecordDTO{
		ID:           m.ID,
		Name:         m.Name,
		Phone:        m.Phone,
		Email:        m.Email,
		Chest:        m.Chest,
		Waist:        m.Waist,
		ArmLength:    m.ArmLength,
		Shoulder:     m.Shoulder,
		Size:         m.Size,
		Color:        m.Color,
		FitStyle:     m.FitStyle,
		BottomStyle:  m.BottomStyle,
		Fabric:       m.Fabric,
		Lapels:       m.Lapels,
		IsWomensSuit: m.IsWomensSuit,
		CreatedAt:    m.CreatedAt,
	}
	if m.AdditionalDescription != nil {
		dto.AdditionalDescription = *m.AdditionalDescription
	}
	if m.ImageURL != nil {
		dto.ImageURL = *m.ImageURL
	}
	return dto
}
