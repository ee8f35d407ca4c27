package lane

import (
	"fmt"
)

// Direction is a steering recommendation.
type Direction string

const (
	Left    Direction = "left"
	Right   Direction = "right"
	Forward Direction = "forward"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Left, Right, Forward:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, s)
	}
}

// LaneCenter is the center line of the lane closest to the camera.
type LaneCenter struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// CenterSelector picks the lane closest to the vehicle and returns its
// center. No distance metric or camera convention is defined here; callers
// supply one.
type CenterSelector interface {
	SelectCenter(lanes []LanePair) (LaneCenter, error)
}

// DirectionAdvisor classifies a lane center into a Direction.
type DirectionAdvisor interface {
	Recommend(center LaneCenter) (Direction, error)
}

// Unimplemented satisfies both navigation strategies and always fails.
type Unimplemented struct{}

func (Unimplemented) SelectCenter([]LanePair) (LaneCenter, error) {
	return LaneCenter{}, fmt.Errorf("lane center selection: %w", ErrUnimplemented)
}

func (Unimplemented) Recommend(LaneCenter) (Direction, error) {
	return "", fmt.Errorf("direction recommendation: %w", ErrUnimplemented)
}

// Navigator chains a CenterSelector and a DirectionAdvisor.
type Navigator struct {
	Selector CenterSelector
	Advisor  DirectionAdvisor
}

// NewNavigator returns a navigator with no strategies plugged in.
func NewNavigator() *Navigator {
	return &Navigator{Selector: Unimplemented{}, Advisor: Unimplemented{}}
}

// Navigate selects the closest lane center and recommends a direction.
func (n *Navigator) Navigate(lanes []LanePair) (LaneCenter, Direction, error) {
	if n.Selector == nil || n.Advisor == nil {
		return LaneCenter{}, "", fmt.Errorf("navigator: %w", ErrUnimplemented)
	}

	center, err := n.Selector.SelectCenter(lanes)
	if err != nil {
		return LaneCenter{}, "", err
	}
	dir, err := n.Advisor.Recommend(center)
	if err != nil {
		return center, "", err
	}
	if _, err := ParseDirection(string(dir)); err != nil {
		return center, "", fmt.Errorf("advisor returned %w", err)
	}
	return center, dir, nil
}
