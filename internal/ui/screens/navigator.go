package screens

import (
	"errors"
	"fmt"
	"sync"

	"respira/internal/recommend"
)

var (
	// ErrInvalidTransition indicates an action not allowed from the current view.
	ErrInvalidTransition = errors.New("invalid view transition")
	// ErrEmptyRequest indicates a check-in with neither an emotion nor text.
	ErrEmptyRequest = errors.New("empty check-in")
)

// View identifies the screen currently shown.
type View string

const (
	ViewWelcome        View = "welcome"
	ViewInput          View = "input"
	ViewLoading        View = "loading"
	ViewRecommendation View = "recommendation"
	ViewBreathing      View = "breathing"
	ViewFinished       View = "finished"
)

// Navigator is the closed state machine behind screen selection.
type Navigator struct {
	mu             sync.Mutex
	view           View
	request        recommend.Request
	recommendation recommend.Recommendation
	onChange       func(View)
}

// NewNavigator starts on the welcome view. onChange is called after every
// transition, outside the navigator lock.
func NewNavigator(onChange func(View)) *Navigator {
	return &Navigator{view: ViewWelcome, onChange: onChange}
}

// View returns the current view.
func (nav *Navigator) View() View {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	return nav.view
}

// Request returns the check-in collected so far.
func (nav *Navigator) Request() recommend.Request {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	return nav.request
}

// Recommendation returns the last resolved recommendation.
func (nav *Navigator) Recommendation() recommend.Recommendation {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	return nav.recommendation
}

// Begin moves from the welcome screen to the check-in.
func (nav *Navigator) Begin() error {
	return nav.transition(ViewWelcome, ViewInput, nil)
}

// SetEmotion records the selected preset emotion.
func (nav *Navigator) SetEmotion(emotion string) {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	if nav.view == ViewInput {
		nav.request.Emotion = emotion
	}
}

// SetDescription records the free-text description.
func (nav *Navigator) SetDescription(description string) {
	nav.mu.Lock()
	defer nav.mu.Unlock()
	if nav.view == ViewInput {
		nav.request.Description = description
	}
}

// Submit moves to the loading view and returns the request to resolve.
func (nav *Navigator) Submit() (recommend.Request, error) {
	var req recommend.Request
	err := nav.transition(ViewInput, ViewLoading, func() error {
		if nav.request.Empty() {
			return ErrEmptyRequest
		}
		req = nav.request
		return nil
	})
	return req, err
}

// Resolve shows the recommendation once the lookup has finished.
func (nav *Navigator) Resolve(rec recommend.Recommendation) error {
	return nav.transition(ViewLoading, ViewRecommendation, func() error {
		nav.recommendation = rec
		return nil
	})
}

// StartBreathing opens the breathing session for the recommendation.
func (nav *Navigator) StartBreathing() error {
	return nav.transition(ViewRecommendation, ViewBreathing, nil)
}

// Finish leaves the breathing session.
func (nav *Navigator) Finish() error {
	return nav.transition(ViewBreathing, ViewFinished, nil)
}

// Reset clears everything and returns to the welcome screen.
func (nav *Navigator) Reset() {
	nav.mu.Lock()
	nav.view = ViewWelcome
	nav.request = recommend.Request{}
	nav.recommendation = recommend.Recommendation{}
	nav.mu.Unlock()

	nav.notify(ViewWelcome)
}

func (nav *Navigator) transition(from, to View, apply func() error) error {
	nav.mu.Lock()
	if nav.view != from {
		current := nav.view
		nav.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s from %s", ErrInvalidTransition, from, to, current)
	}
	if apply != nil {
		if err := apply(); err != nil {
			nav.mu.Unlock()
			return err
		}
	}
	nav.view = to
	nav.mu.Unlock()

	nav.notify(to)
	return nil
}

func (nav *Navigator) notify(view View) {
	if nav.onChange != nil {
		nav.onChange(view)
	}
}
