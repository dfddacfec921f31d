package contact

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/tailorline/storefront/pkg/db/models"
	pkgerrors "github.com/tailorline/storefront/pkg/errors"
	"github.com/tailorline/storefront/pkg/logger"
	"github.com/tailorline/storefront/pkg/validation"
)

const MsgSent = "Message sent successfully"

// Input is the contact form.
type Input struct {
	Name               string `json:"name" validate:"required,max=255"`
	Email              string `json:"email" validate:"required,email,max=255"`
	Message            string `json:"message" validate:"required,max=5000"`
	IsTailoringRequest bool   `json:"isTailoringRequest"`
}

type Service interface {
	Send(ctx context.Context, input Input) error
}

type service struct {
	db       *gorm.DB
	logg     *logger.Logger
	validate *validator.Validate
}

func NewService(db *gorm.DB, logg *logger.Logger) (Service, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "db is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{db: db, logg: logg, validate: validation.New(nil)}, nil
}

// Send stores the message for the shop to follow up.
func (s *service) Send(ctx context.Context, in Input) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := s.validate.Struct(in); err != nil {
		return validation.Error(err)
	}

	req := &models.ContactRequest{
		Name:               in.Name,
		Email:              in.Email,
		Message:            in.Message,
		IsTailoringRequest: in.IsTailoringRequest,
	}
	if err := s.db.WithContext(ctx).Create(req).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save contact request")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"contact_id": req.ID, "tailoring": in.IsTailoringRequest}), "contact.received")
	return nil
}
