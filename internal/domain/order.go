package domain

import (
	"fmt"
	"strings"
)

// Order is a single manufacturing job, keyed by "SOP-RATING".
// Field names and serialization mirror the exported dataset format
// (test.json), so legacy exports load unchanged.
type Order struct {
	SOP             int                 `json:"SOP"`
	Rating          string              `json:"RATING"`
	WrittenUp       YesNo               `json:"WRITTEN-UP"`
	IssuedToFactory YesNo               `json:"ISSUED-TO-FACTORY"`
	FactoryComplete YesNo               `json:"FACTORY-COMPLETE"`
	Dispatch        *string             `json:"DISPATCH"`
	Logs            map[string]LogEntry `json:"LOGS"`
}

// Dataset is the whole persisted store: every order keyed by Order.Key.
type Dataset struct {
	Orders map[string]*Order `json:"orders"`
}

func NewDataset() *Dataset {
	return &Dataset{Orders: make(map[string]*Order)}
}

// Key builds the composite order key.
func Key(sop int, rating string) string {
	return fmt.Sprintf("%d-%s", sop, rating)
}

// NewOrder creates an order at office intake: all downstream flags off,
// dispatch unset, no logs yet.
func NewOrder(sop int, rating string, writtenUp bool) *Order {
	return &Order{
		SOP:       sop,
		Rating:    rating,
		WrittenUp: YesNo(writtenUp),
		Logs:      make(map[string]LogEntry),
	}
}

func (o *Order) Key() string {
	return Key(o.SOP, o.Rating)
}

// Clone returns a deep copy; the store hands copies out so callers cannot
// mutate held state behind its back.
func (o *Order) Clone() Order {
	c := *o
	c.Logs = make(map[string]LogEntry, len(o.Logs))
	for k, v := range o.Logs {
		c.Logs[k] = v
	}
	if o.Dispatch != nil {
		d := *o.Dispatch
		c.Dispatch = &d
	}
	return c
}

// YesNo is a boolean serialized as "Yes"/"No". Older exports carry raw JSON
// booleans for the same fields; both forms unmarshal.
type YesNo bool

func (y YesNo) String() string {
	if y {
		return "Yes"
	}
	return "No"
}

func (y YesNo) MarshalJSON() ([]byte, error) {
	return []byte(`"` + y.String() + `"`), nil
}

func (y *YesNo) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(strings.Trim(string(data), `"`)) {
	case "yes", "true":
		*y = true
	case "no", "false", "null", "":
		*y = false
	default:
		return fmt.Errorf("invalid flag value %s", string(data))
	}
	return nil
}
