// Package notify implements the outbound collaborator boundaries: the
// capacity-available signal and magic-link email delivery.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/shelterlink/api/internal/domain"
)

// LogNotifier records capacity-available signals to the service log. It
// stands in for a push/email dispatch pipeline; subscribers are identified
// downstream by shelter and category only.
type LogNotifier struct {
	logger *zap.SugaredLogger
}

func NewLogNotifier(logger *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) CapacityAvailable(_ context.Context, shelterID string, category domain.Category) {
	n.logger.Infow("capacity available",
		"shelter_id", shelterID,
		"category", string(category),
	)
}
