package domain

import "fmt"

// Areas and sub-areas that carry status effects. Production-floor stations
// (FIRE-DOORS, DET, FACTORY-8, NON-RATED) log activity without flipping
// any flag.
const (
	AreaOffice   = "OFFICE"
	AreaDespatch = "DESPATCH"

	SubWrittenUp       = "WRITTEN-UP"
	SubIssuedFactory   = "ISSUED-FACTORY"
	SubFactoryComplete = "FACTORY-COMPLETE"
	SubWrapped         = "WRAPPED"
	SubSent            = "SENT"
)

// Flag identifies which status field a transition flips.
type Flag int

const (
	FlagNone Flag = iota
	FlagWrittenUp
	FlagIssuedToFactory
	FlagFactoryComplete
	FlagDispatch
)

func (f Flag) String() string {
	switch f {
	case FlagWrittenUp:
		return "WRITTEN-UP"
	case FlagIssuedToFactory:
		return "ISSUED-TO-FACTORY"
	case FlagFactoryComplete:
		return "FACTORY-COMPLETE"
	case FlagDispatch:
		return "DISPATCH"
	default:
		return "NONE"
	}
}

// Effect is the status change an accepted scan carries. Dispatch is only
// set for FlagDispatch.
type Effect struct {
	Flag     Flag
	Dispatch string
}

// Station is a scan location, the key of the transition table.
type Station struct {
	Area    string
	SubArea string
}

type transition struct {
	precondition func(*Order) bool
	reject       string
	effect       func(Station) Effect
}

// transitions gates the status-flag progression: written up, then issued
// to factory, then factory complete, then dispatch. Stations absent from
// the table log without status effect.
var transitions = map[Station]transition{
	{AreaOffice, SubWrittenUp}: {
		effect: func(Station) Effect { return Effect{Flag: FlagWrittenUp} },
	},
	{AreaOffice, SubIssuedFactory}: {
		precondition: func(o *Order) bool { return bool(o.WrittenUp) },
		reject:       "must be written up before issuing to factory",
		effect:       func(Station) Effect { return Effect{Flag: FlagIssuedToFactory} },
	},
	{AreaOffice, SubFactoryComplete}: {
		precondition: func(o *Order) bool { return bool(o.IssuedToFactory) },
		reject:       "must be issued to factory before completion",
		effect:       func(Station) Effect { return Effect{Flag: FlagFactoryComplete} },
	},
	{AreaDespatch, SubWrapped}: {
		precondition: func(o *Order) bool { return bool(o.FactoryComplete) },
		reject:       "must be factory complete before dispatch",
		effect:       func(s Station) Effect { return Effect{Flag: FlagDispatch, Dispatch: s.SubArea} },
	},
	{AreaDespatch, SubSent}: {
		precondition: func(o *Order) bool { return bool(o.FactoryComplete) },
		reject:       "must be factory complete before dispatch",
		effect:       func(s Station) Effect { return Effect{Flag: FlagDispatch, Dispatch: s.SubArea} },
	},
}

// Evaluate decides whether a scan at the given station may proceed against
// the order's current flags. On rejection the scan must be dropped whole:
// no flag change and no log entry.
func Evaluate(o *Order, area, subArea string) (Effect, error) {
	st := Station{Area: area, SubArea: subArea}
	tr, found := transitions[st]
	if !found {
		return Effect{Flag: FlagNone}, nil
	}
	if tr.precondition != nil && !tr.precondition(o) {
		return Effect{}, fmt.Errorf("%w: %s", ErrTransitionRejected, tr.reject)
	}
	return tr.effect(st), nil
}

// ApplyEffect flips the order's status field for an accepted transition.
func ApplyEffect(o *Order, eff Effect) {
	switch eff.Flag {
	case FlagWrittenUp:
		o.WrittenUp = true
	case FlagIssuedToFactory:
		o.IssuedToFactory = true
	case FlagFactoryComplete:
		o.FactoryComplete = true
	case FlagDispatch:
		d := eff.Dispatch
		o.Dispatch = &d
	}
}
