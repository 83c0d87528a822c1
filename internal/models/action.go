package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Action is one sustainability action entry in the remote collection.
type Action struct {
	ID     int64  `json:"id"`
	Action string `json:"action"`
	Date   string `json:"date"`
	Points int    `json:"points"`
}

// ActionInput is the create payload: an Action without its server-assigned id.
type ActionInput struct {
	Action string `json:"action"`
	Date   string `json:"date"`
	Points Points `json:"points"`
}

// ActionPatch carries a partial update. Nil fields are left out of the request.
type ActionPatch struct {
	Action *string `json:"action,omitempty"`
	Date   *string `json:"date,omitempty"`
	Points *Points `json:"points,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ActionPatch) Empty() bool {
	return p.Action == nil && p.Date == nil && p.Points == nil
}

// PatchFromInput builds a patch that sets every field of in.
func PatchFromInput(in ActionInput) ActionPatch {
	action, date, points := in.Action, in.Date, in.Points
	return ActionPatch{Action: &action, Date: &date, Points: &points}
}

// Points is a coerced point value. It may hold NaN or an infinity when the
// user typed something that is not a number; those encode as JSON null and
// the server decides what to do with them.
type Points float64

// MarshalJSON implements json.Marshaler.
func (p Points) MarshalJSON() ([]byte, error) {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return []byte(strconv.FormatInt(int64(f), 10)), nil
	}
	return json.Marshal(f)
}

// String renders p the way it is sent over the wire.
func (p Points) String() string {
	b, _ := p.MarshalJSON()
	return string(b)
}

// ParsePoints coerces free text into a point value. Surrounding whitespace is
// ignored, blank input is zero and anything unparsable is NaN.
func ParsePoints(s string) Points {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat reports out-of-range values with ±Inf and an error
		if math.IsInf(f, 0) {
			return Points(f)
		}
		return Points(math.NaN())
	}
	return Points(f)
}
