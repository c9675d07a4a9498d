package tracking

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/oakfield/doortrack/internal/adapter/logger"
	"github.com/oakfield/doortrack/internal/domain"
	"github.com/oakfield/doortrack/internal/interfaces"
)

// Service derives the reporting views: the job list with each order's
// latest known state, and the full log history of a single order.
type Service struct {
	store  interfaces.OrderStore
	logger logger.Logger
}

func NewService(store interfaces.OrderStore, lgr logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: lgr,
	}
}

// OrderSummaryRows lists every order, most recently active first. Orders
// without any dated log sort last; within that the key order from the
// store keeps the result stable. search, when non-empty, filters rows by
// SOP substring.
func (s *Service) OrderSummaryRows(ctx context.Context, search string) ([]interfaces.SummaryRow, error) {
	search = strings.TrimSpace(search)

	type datedRow struct {
		row   interfaces.SummaryRow
		at    time.Time
		dated bool
	}

	var rows []datedRow
	for _, order := range s.store.All() {
		if search != "" && !strings.Contains(strconv.Itoa(order.SOP), search) {
			continue
		}

		r := interfaces.SummaryRow{
			SOP:             order.SOP,
			Rating:          order.Rating,
			WrittenUp:       order.WrittenUp.String(),
			IssuedToFactory: order.IssuedToFactory.String(),
			FactoryComplete: order.FactoryComplete.String(),
			LastArea:        "-",
			LastDate:        "-",
			Dispatch:        "-",
		}
		if order.Dispatch != nil && *order.Dispatch != "" {
			r.Dispatch = *order.Dispatch
		}

		d := datedRow{row: r}
		if latest, _, ok := domain.LatestLog(&order); ok {
			d.row.LastArea = latest.Area
			d.row.LastDate = latest.Date
			// Parse cannot fail here: LatestLog only considers valid dates.
			d.at, _ = domain.ParseDisplayDate(latest.Date)
			d.dated = true
		}
		rows = append(rows, d)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].dated != rows[j].dated {
			return rows[i].dated
		}
		return rows[i].at.After(rows[j].at)
	})

	out := make([]interfaces.SummaryRow, len(rows))
	for i, d := range rows {
		out[i] = d.row
	}
	return out, nil
}

// OrderDetail returns one order's full log history, newest entry first.
// Both sop and rating are required.
func (s *Service) OrderDetail(ctx context.Context, sop, rating string) (*interfaces.OrderDetail, error) {
	sop = strings.TrimSpace(sop)
	rating = strings.ToUpper(strings.TrimSpace(rating))
	if sop == "" || rating == "" {
		return nil, fmt.Errorf("%w: sop and rating are required", domain.ErrValidation)
	}
	sopNum, err := strconv.Atoi(sop)
	if err != nil {
		return nil, fmt.Errorf("%w: SOP must be a number", domain.ErrValidation)
	}

	key := domain.Key(sopNum, rating)
	order, found := s.store.Get(key)
	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, key)
	}

	keys := make([]string, 0, len(order.Logs))
	for k := range order.Logs {
		keys = append(keys, k)
	}
	// Timestamp keys sort chronologically; reverse for newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	detail := &interfaces.OrderDetail{
		SOP:      order.SOP,
		Rating:   order.Rating,
		Dispatch: "-",
		Logs:     make([]domain.LogEntry, 0, len(keys)),
	}
	if order.Dispatch != nil && *order.Dispatch != "" {
		detail.Dispatch = *order.Dispatch
	}
	for _, k := range keys {
		detail.Logs = append(detail.Logs, order.Logs[k])
	}
	return detail, nil
}
