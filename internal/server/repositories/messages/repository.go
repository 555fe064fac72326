// Package messages stores contact requests submitted from the website.
package messages

import (
	"context"

	"github.com/knothost/siteapi/internal/server/models"
)

type Repository interface {
	// Create inserts a message, filling in ID and timestamps.
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)
}
