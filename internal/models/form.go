package models

import (
	"errors"
	"strconv"

	"github.com/julianstephens/sustainlog/internal/constants"
)

// ErrFieldsRequired is returned when a form is submitted with a blank field.
var ErrFieldsRequired = errors.New(constants.MsgFieldsRequired)

// ActionForm mirrors an Action being composed or edited, minus its id.
// Points stays textual until the form is submitted.
type ActionForm struct {
	Action string
	Date   string
	Points string
}

// FormFromAction populates a form from an existing record.
func FormFromAction(a Action) ActionForm {
	return ActionForm{
		Action: a.Action,
		Date:   a.Date,
		Points: strconv.Itoa(a.Points),
	}
}

// Validate checks that every field has been filled in.
func (f ActionForm) Validate() error {
	if f.Action == "" || f.Date == "" || f.Points == "" {
		return ErrFieldsRequired
	}
	return nil
}

// Input builds the request payload, coercing points to a number.
func (f ActionForm) Input() ActionInput {
	return ActionInput{
		Action: f.Action,
		Date:   f.Date,
		Points: ParsePoints(f.Points),
	}
}

// Reset clears every field.
func (f *ActionForm) Reset() {
	*f = ActionForm{}
}
