package scan

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oakfield/doortrack/internal/adapter/logger"
	"github.com/oakfield/doortrack/internal/domain"
	"github.com/oakfield/doortrack/internal/interfaces"
)

// Service is the order lifecycle controller: it validates a submitted
// scan, gates it through the transition table and records the log entry.
// A rejection anywhere drops the scan whole; nothing is mutated.
type Service struct {
	store     interfaces.OrderStore
	publisher interfaces.MessagePublisher
	logger    logger.Logger
	now       func() time.Time
}

// NewService wires the controller. publisher may be nil; status updates
// are then simply not announced.
func NewService(store interfaces.OrderStore, publisher interfaces.MessagePublisher, lgr logger.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    lgr,
		now:       time.Now,
	}
}

func (s *Service) SubmitScan(ctx context.Context, cmd interfaces.ScanCommand) (*interfaces.ScanResult, error) {
	sopRaw := strings.TrimSpace(cmd.SOP)
	if sopRaw == "" {
		return nil, fmt.Errorf("%w: missing SOP", domain.ErrValidation)
	}
	sop, err := strconv.Atoi(sopRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: SOP must be a number", domain.ErrValidation)
	}
	rating := strings.ToUpper(strings.TrimSpace(cmd.Rating))
	area := strings.ToUpper(strings.TrimSpace(cmd.Area))
	subArea := strings.ToUpper(strings.TrimSpace(cmd.SubArea))

	key := domain.Key(sop, rating)
	order, found := s.store.Get(key)
	if !found {
		// Unknown key never creates implicitly: the caller re-enters
		// through the intake flow with these fields pre-filled.
		s.logger.Debug("order_unknown", "Scan against unknown key", "", map[string]interface{}{"key": key})
		return nil, &domain.OrderNotFoundError{SOP: sopRaw, Rating: rating, User: cmd.User}
	}

	eff, err := domain.Evaluate(&order, area, subArea)
	if err != nil {
		s.logger.Debug("scan_rejected", "Transition precondition not met", "", map[string]interface{}{
			"key":      key,
			"area":     area,
			"sub_area": subArea,
		})
		return nil, err
	}

	now := s.now()
	entry := domain.NewScanLog(now, domain.ScanInput{
		User:      strings.TrimSpace(cmd.User),
		Area:      area,
		SubArea:   subArea,
		Line:      strings.TrimSpace(cmd.Line),
		StartTime: strings.TrimSpace(cmd.StartTime),
		EndTime:   strings.TrimSpace(cmd.EndTime),
		Status:    cmd.Status,
		Notes:     cmd.Notes,
	})

	if err := s.store.AppendLog(ctx, key, domain.TimestampKey(now), entry, eff); err != nil {
		return nil, err
	}

	s.logger.Info("scan_recorded", "Scan recorded", "", map[string]interface{}{
		"key":      key,
		"area":     area,
		"sub_area": subArea,
		"flag":     eff.Flag.String(),
	})

	if eff.Flag != domain.FlagNone {
		s.announce(ctx, key, sop, rating, area, subArea, cmd.User, eff, now)
	}

	return &interfaces.ScanResult{
		Key:         key,
		Message:     fmt.Sprintf("Order %s updated successfully", key),
		FlagChanged: eff.Flag,
	}, nil
}

// announce publishes the status change, fire and forget.
func (s *Service) announce(ctx context.Context, key string, sop int, rating, area, subArea, user string, eff domain.Effect, now time.Time) {
	if s.publisher == nil {
		return
	}
	msg := interfaces.StatusUpdateMessage{
		Key:       key,
		SOP:       sop,
		Rating:    rating,
		Flag:      eff.Flag.String(),
		Dispatch:  eff.Dispatch,
		User:      user,
		Area:      area,
		SubArea:   subArea,
		Timestamp: now,
	}
	if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
		s.logger.Error("publish_failed", "Failed to publish status update", "", map[string]interface{}{"key": key}, err)
	}
}
