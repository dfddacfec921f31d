package subscribers

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/tailorline/storefront/pkg/db"
	"github.com/tailorline/storefront/pkg/db/models"
	pkgerrors "github.com/tailorline/storefront/pkg/errors"
	"github.com/tailorline/storefront/pkg/logger"
	"github.com/tailorline/storefront/pkg/metrics"
	"github.com/tailorline/storefront/pkg/pagination"
)

const (
	MsgSubscribed        = "Thank you for subscribing!"
	MsgInvalidOrExisting = "Invalid or already subscribed email."
)

// Repository encapsulates newsletter subscriber persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, sub *models.Subscriber) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *Repository) List(ctx context.Context, limit int) ([]models.Subscriber, error) {
	var out []models.Subscriber
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(pagination.NormalizeLimit(limit)).Find(&out).Error
	return out, err
}

type Service interface {
	Subscribe(ctx context.Context, email string) error
	List(ctx context.Context, limit int) ([]models.Subscriber, error)
}

type service struct {
	repo     *Repository
	logg     *logger.Logger
	metrics  *metrics.StoreMetrics
	validate *validator.Validate
}

func NewService(repo *Repository, logg *logger.Logger, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "subscriber repo is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg, metrics: m, validate: validator.New()}, nil
}

// Subscribe adds the address to the newsletter. Malformed and already
// subscribed addresses get the same answer.
func (s *service) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email,max=255"); err != nil {
		return invalid()
	}
	if err := s.repo.Create(ctx, &models.Subscriber{Email: email}); err != nil {
		if db.IsUniqueViolation(err, "") {
			return invalid()
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save subscriber")
	}
	s.metrics.Subscribed()
	s.logg.Info(ctx, "subscriber.created")
	return nil
}

func (s *service) List(ctx context.Context, limit int) ([]models.Subscriber, error) {
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscribers")
	}
	return rows, nil
}

func invalid() error {
	return pkgerrors.New(pkgerrors.CodeValidation, MsgInvalidOrExisting).
		WithDetails(map[string][]string{"email": {MsgInvalidOrExisting}})
}
