package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamal-hamza/adir/internal/core/domain"
	"github.com/kamal-hamza/adir/internal/core/ports"
)

// ErrInvalidSubmission wraps every validation failure of a submission
var ErrInvalidSubmission = errors.New("invalid submission")

// SubmitService records user contributions as pending submissions
type SubmitService struct {
	store      ports.SubmissionStore
	categories []domain.Category
	validate   *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewSubmitService creates a new submit service
func NewSubmitService(store ports.SubmissionStore, categories []domain.Category, logger *zap.Logger) *SubmitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitService{
		store:      store,
		categories: categories,
		validate:   validator.New(),
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitRequest represents a contribution as entered by the user
type SubmitRequest struct {
	Title       string
	Description string
	Category    string
	Code        string
	Author      string
	Tags        string // comma separated
}

// Submit validates req and stores it as a pending submission
func (s *SubmitService) Submit(ctx context.Context, req SubmitRequest) (*domain.Submission, error) {
	now := domain.FormatTimestamp(s.now())

	submission := domain.Submission{
		ID:          "asset-" + uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Code:        strings.TrimSpace(req.Code),
		Author:      strings.TrimSpace(req.Author),
		Tags:        splitTags(req.Tags),
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.validate.StructCtx(ctx, submission); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return nil, fmt.Errorf("%w: %s", ErrInvalidSubmission, strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}

	if !domain.IsKnownCategory(s.categories, submission.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidSubmission, submission.Category)
	}

	if err := s.store.Append(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	s.logger.Info("asset submitted",
		zap.String("id", submission.ID),
		zap.String("category", submission.Category),
	)

	return &submission, nil
}

// Pending lists stored submissions
func (s *SubmitService) Pending(ctx context.Context) ([]domain.Submission, error) {
	return s.store.List(ctx)
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
