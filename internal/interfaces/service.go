package interfaces

import (
	"context"

	"github.com/oakfield/doortrack/internal/domain"
)

// Commands into the services (business logic).

type ScanCommand struct {
	SOP       string
	Rating    string
	User      string
	Line      string
	Area      string
	SubArea   string
	StartTime string
	EndTime   string
	Status    string
	Notes     string
}

type CreateOrderCommand struct {
	SOP       string
	Rating    string
	User      string
	WrittenUp bool
	Notes     string
}

// Results out of the services.

type ScanResult struct {
	Key         string
	Message     string
	FlagChanged domain.Flag
}

type CreateOrderResult struct {
	Key     string
	Message string
	Order   domain.Order
}

// SummaryRow is one job-list line; LastArea/LastDate/Dispatch render "-"
// when unknown.
type SummaryRow struct {
	SOP             int    `json:"sop"`
	Rating          string `json:"rating"`
	WrittenUp       string `json:"written_up"`
	IssuedToFactory string `json:"issued_to_factory"`
	FactoryComplete string `json:"factory_complete"`
	LastArea        string `json:"last_area"`
	LastDate        string `json:"last_date"`
	Dispatch        string `json:"dispatch"`
}

// OrderDetail is the full log history of one order, newest entry first.
type OrderDetail struct {
	SOP      int               `json:"sop"`
	Rating   string            `json:"rating"`
	Dispatch string            `json:"dispatch"`
	Logs     []domain.LogEntry `json:"logs"`
}

// Service interfaces.

type ScanService interface {
	SubmitScan(ctx context.Context, cmd ScanCommand) (*ScanResult, error)
}

type IntakeService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*CreateOrderResult, error)
}

type TrackingService interface {
	OrderSummaryRows(ctx context.Context, search string) ([]SummaryRow, error)
	OrderDetail(ctx context.Context, sop, rating string) (*OrderDetail, error)
}
