package workouts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/2beens/memberhub/internal/gymstats/activity"
)

var ErrInvalidWorkout = errors.New("invalid workout")

var validate = validator.New(validator.WithRequiredStructEnabled())

type ExerciseRequest struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Sets   int     `json:"sets" validate:"min=1"`
	Reps   int     `json:"reps" validate:"min=1"`
	Weight float64 `json:"weight" validate:"min=0"`
}

type CreateRequest struct {
	Date      string            `json:"date" validate:"required"`
	Notes     string            `json:"notes" validate:"max=2000"`
	Exercises []ExerciseRequest `json:"exercises" validate:"required,min=1,dive"`
}

// ToSession validates the request and builds the session for memberID.
func (req CreateRequest) ToSession(memberID int64) (activity.WorkoutSession, error) {
	req.Date = strings.TrimSpace(req.Date)
	req.Exercises = append([]ExerciseRequest(nil), req.Exercises...)
	for i := range req.Exercises {
		req.Exercises[i].Name = strings.TrimSpace(req.Exercises[i].Name)
	}

	if err := validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return activity.WorkoutSession{}, fmt.Errorf("%w: %s failed on %s", ErrInvalidWorkout, first.Namespace(), first.Tag())
		}
		return activity.WorkoutSession{}, fmt.Errorf("%w: %w", ErrInvalidWorkout, err)
	}

	date, err := activity.ParseDay(req.Date)
	if err != nil {
		return activity.WorkoutSession{}, fmt.Errorf("%w: date: %w", ErrInvalidWorkout, err)
	}

	session := activity.WorkoutSession{
		MemberRef: memberID,
		Date:      date,
		Notes:     strings.TrimSpace(req.Notes),
		Exercises: make([]activity.ExerciseSet, 0, len(req.Exercises)),
	}
	for _, e := range req.Exercises {
		session.Exercises = append(session.Exercises, activity.ExerciseSet{
			Name:   e.Name,
			Sets:   e.Sets,
			Reps:   e.Reps,
			Weight: e.Weight,
		})
	}
	return session, nil
}
