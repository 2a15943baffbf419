package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Event is a user input
type Event uint8

const (
	// EventForward is the right button
	EventForward Event = iota
	EventBackward
	EventConfirm
	EventReject
)

func (e Event) String() string {
	switch e {
	case EventForward:
		return "forward"
	case EventBackward:
		return "backward"
	case EventConfirm:
		return "confirm"
	case EventReject:
		return "reject"
	default:
		return fmt.Sprintf("event(%d)", uint8(e))
	}
}

// ErrNoMoreEvents is returned when a scripted display runs out of events
var ErrNoMoreEvents = errors.New("event script ended before a decision")

// Display paints screens and delivers user events
type Display interface {
	Paint(s Screen) error
	Next(ctx context.Context) (Event, error)
}

// Flow is a sequence of screens ending in a user decision. Driver reviews a
// transaction, AddressDriver confirms an address.
type Flow interface {
	Screen() Screen
	Handle(ctx context.Context, ev Event) error
	Done() bool
	Result() Result
}

// Run feeds events from the display to the flow until the user decides
func Run(ctx context.Context, d Flow, display Display) (Result, error) {
	for !d.Done() {
		if err := display.Paint(d.Screen()); err != nil {
			return Result{}, fmt.Errorf("failed to paint screen: %w", err)
		}

		ev, err := display.Next(ctx)
		if err != nil {
			return Result{}, err
		}
		if err := d.Handle(ctx, ev); err != nil {
			return Result{}, err
		}
	}
	return d.Result(), nil
}

// ParseEvents parses a compact event script: f forward, b backward,
// c confirm, r reject. Spaces and commas are ignored.
func ParseEvents(script string) ([]Event, error) {
	var events []Event
	for i, r := range strings.ToLower(script) {
		switch r {
		case 'f':
			events = append(events, EventForward)
		case 'b':
			events = append(events, EventBackward)
		case 'c':
			events = append(events, EventConfirm)
		case 'r':
			events = append(events, EventReject)
		case ' ', ',', '\n', '\t':
		default:
			return nil, fmt.Errorf("invalid event %q at offset %d", r, i)
		}
	}
	return events, nil
}

// Scripted is a Display replaying a fixed list of events and recording
// every painted screen.
type Scripted struct {
	Events  []Event
	Screens []Screen
	next    int
}

// NewScripted creates a scripted display
func NewScripted(events []Event) *Scripted {
	return &Scripted{Events: events}
}

// Paint records the screen
func (s *Scripted) Paint(screen Screen) error {
	s.Screens = append(s.Screens, screen)
	return nil
}

// Next returns the next scripted event
func (s *Scripted) Next(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.next >= len(s.Events) {
		return 0, ErrNoMoreEvents
	}
	ev := s.Events[s.next]
	s.next++
	return ev, nil
}
