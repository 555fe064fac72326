package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/knothost/siteapi/internal/common"
	"github.com/knothost/siteapi/internal/logging"
	"github.com/knothost/siteapi/internal/server/models"
	"github.com/knothost/siteapi/internal/server/repositories/repomanager"
)

// ContactInput is a contact form submission. Phone is optional.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Details string
}

// ContactService validates and stores contact requests.
type ContactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewContactService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ContactService {
	return &ContactService{db: db, repomanager: m, logger: logger.With("module", "contact")}
}

func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.Message, error) {
	msg := &models.Message{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Details: strings.TrimSpace(in.Details),
	}
	if msg.Name == "" || msg.Email == "" || msg.Details == "" {
		return nil, common.NewValidationError("Name, email, and details are required")
	}

	saved, err := s.repomanager.Messages(s.db).Create(ctx, msg)
	if err != nil {
		s.logger.Error(ctx, "store contact message", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "contact request received", "id", saved.ID, "name", saved.Name, "email", saved.Email)
	return saved, nil
}
