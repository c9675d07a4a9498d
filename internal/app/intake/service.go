package intake

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

// Service handles office intake: the only path that creates orders.
type Service struct {
	store  interfaces.OrderStore
	logger logger.Logger
	now    func() time.Time
}

func NewService(store interfaces.OrderStore, lgr logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: lgr,
		now:    time.Now,
	}
}

func (s *Service) CreateOrder(ctx context.Context, cmd interfaces.CreateOrderCommand) (*interfaces.CreateOrderResult, error) {
	sopRaw := strings.TrimSpace(cmd.SOP)
	if sopRaw == "" {
		return nil, fmt.Errorf("%w: missing SOP", domain.ErrValidation)
	}
	sop, err := strconv.Atoi(sopRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: SOP must be a number", domain.ErrValidation)
	}
	rating := strings.ToUpper(strings.TrimSpace(cmd.Rating))
	if rating == "" {
		return nil, fmt.Errorf("%w: missing rating", domain.ErrValidation)
	}

	key := domain.Key(sop, rating)
	if _, exists := s.store.Get(key); exists {
		s.logger.Debug("order_exists", "Create rejected, key already in system", "", map[string]interface{}{"key": key})
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateOrder, key)
	}

	now := s.now()
	order := domain.NewOrder(sop, rating, cmd.WrittenUp)
	order.Logs[domain.TimestampKey(now)] = domain.NewIntakeLog(now, strings.TrimSpace(cmd.User), cmd.WrittenUp, cmd.Notes)

	if err := s.store.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order_created", "New order created", "", map[string]interface{}{
		"key":        key,
		"written_up": order.WrittenUp.String(),
	})

	return &interfaces.CreateOrderResult{
		Key:     key,
		Message: fmt.Sprintf("Order %s created successfully", key),
		Order:   order.Clone(),
	}, nil
}
