package tailoring

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/tailorline/storefront/pkg/db/models"
	"github.com/tailorline/storefront/pkg/enums"
	pkgerrors "github.com/tailorline/storefront/pkg/errors"
	"github.com/tailorline/storefront/pkg/logger"
	"github.com/tailorline/storefront/pkg/metrics"
	"github.com/tailorline/storefront/pkg/storage/local"
	"github.com/tailorline/storefront/pkg/validation"
)

const (
	MsgSaved     = "Measurements saved successfully"
	imagesFolder = "custom_tailoring"
)

// ImageStore persists an uploaded reference image and returns its URL.
type ImageStore interface {
	SaveImage(ctx context.Context, folder string, r io.Reader) (string, error)
	DeleteImage(ctx context.Context, url string) error
}

// Repository encapsulates measurement form persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, rec *models.CustomTailoring) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.CustomTailoring, error) {
	var rec models.CustomTailoring
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

type ServiceParams struct {
	Repo    *Repository
	Images  ImageStore
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

type Service interface {
	Submit(ctx context.Context, input Input, image io.Reader) (*RecordDTO, error)
	Get(ctx context.Context, id int64) (*RecordDTO, error)
}

type service struct {
	repo     *Repository
	images   ImageStore
	logg     *logger.Logger
	metrics  *metrics.StoreMetrics
	validate *validator.Validate
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tailoring repo is required")
	}
	if params.Images == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "image store is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		repo:     params.Repo,
		images:   params.Images,
		logg:     logg,
		metrics:  params.Metrics,
		validate: validate,
	}, nil
}

// Submit validates the form, stores the optional image and saves the record.
// image may be nil.
func (s *service) Submit(ctx context.Context, input Input, image io.Reader) (*RecordDTO, error) {
	input = normalize(input)
	if err := s.validate.Struct(input); err != nil {
		return nil, validation.Error(err)
	}

	rec := &models.CustomTailoring{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		Chest:        input.Chest,
		Waist:        input.Waist,
		ArmLength:    input.ArmLength,
		Shoulder:     input.Shoulder,
		Size:         enums.SuitSize(input.Size),
		Color:        input.Color,
		FitStyle:     enums.FitStyle(input.FitStyle),
		BottomStyle:  enums.BottomStyle(input.BottomStyle),
		Fabric:       enums.Fabric(input.Fabric),
		Lapels:       enums.Lapels(input.Lapels),
		IsWomensSuit: input.IsWomensSuit,
	}
	if rec.BottomStyle == "" {
		rec.BottomStyle = enums.BottomStyleTrouser
	}
	if input.AdditionalDescription != "" {
		desc := input.AdditionalDescription
		rec.AdditionalDescription = &desc
	}

	if image != nil {
		url, err := s.images.SaveImage(ctx, imagesFolder, image)
		switch {
		case errors.Is(err, local.ErrTooLarge):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "The image may not be greater than 5120 kilobytes.").
				WithDetails(map[string][]string{"image": {"The image may not be greater than 5120 kilobytes."}})
		case errors.Is(err, local.ErrUnsupportedType):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "The image must be a file of type: jpeg, png.").
				WithDetails(map[string][]string{"image": {"The image must be a file of type: jpeg, png."}})
		case err != nil:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store image")
		}
		rec.ImageURL = &url
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		if rec.ImageURL != nil {
			if delErr := s.images.DeleteImage(ctx, *rec.ImageURL); delErr != nil {
				s.logg.Error(s.logg.WithField(ctx, "url", *rec.ImageURL), "tailoring.image_cleanup_failed", delErr)
			}
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save measurements")
	}
	s.metrics.TailoringSaved()
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"tailoring_id": rec.ID, "fabric": input.Fabric}), "tailoring.saved")

	dto := toDTO(*rec)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, id int64) (*RecordDTO, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Measurements not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load measurements")
	}
	dto := toDTO(*rec)
	return &dto, nil
}

func normalize(in Input) Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Color = strings.TrimSpace(in.Color)
	in.BottomStyle = strings.TrimSpace(in.BottomStyle)
	in.AdditionalDescription = strings.TrimSpace(in.AdditionalDescription)
	return in
}

var validate = validation.New(map[string]validation.Rule{
	"suit_size":    func(s string) bool { return enums.SuitSize(s).IsValid() },
	"fit_style":    func(s string) bool { return enums.FitStyle(s).IsValid() },
	"bottom_style": func(s string) bool { return enums.BottomStyle(s).IsValid() },
	"fabric":       func(s string) bool { return enums.Fabric(s).IsValid() },
	"lapels":       func(s string) bool { return enums.Lapels(s).IsValid() },
})
