package workout

import "strings"

// Field names one of the three linked numeric fields of a segment.
type Field int

const (
	FieldDistance Field = iota
	FieldPace
	FieldDuration
)

// Fields lists the linked fields in form order.
var Fields = []Field{FieldDistance, FieldPace, FieldDuration}

func (f Field) String() string {
	switch f {
	case FieldDistance:
		return "distance"
	case FieldPace:
		return "pace"
	case FieldDuration:
		return "duration"
	}
	return "unknown"
}

// Update holds the fields a reconciliation changed. A nil or empty Update means no change.
type Update map[Field]string

// Apply returns form with the update written in.
func (u Update) Apply(form SegmentForm) SegmentForm {
	for field, v := range u {
		form = form.With(field, v)
	}
	return form
}

// Empty reports whether u changes nothing.
func (u Update) Empty() bool { return len(u) == 0 }

type stateKind int

const (
	stateComplete stateKind = iota
	stateMissingOne
	stateMissingTwoOrMore
)

// formState classifies which of the linked fields are filled in.
type formState struct {
	kind    stateKind
	missing Field // set for stateMissingOne only
}

func classify(form SegmentForm) formState {
	var missing []Field
	for _, f := range Fields {
		if strings.TrimSpace(form.Value(f)) == "" {
			missing = append(missing, f)
		}
	}
	switch len(missing) {
	case 0:
		return formState{kind: stateComplete}
	case 1:
		return formState{kind: stateMissingOne, missing: missing[0]}
	}
	return formState{kind: stateMissingTwoOrMore}
}

// derivation computes a new value for target. ok is false when the inputs
// do not allow a derivation (empty, non-numeric or zero divisor).
type derivation struct {
	target Field
	derive func(SegmentForm) (value string, ok bool, err error)
}

var (
	toDuration = derivation{target: FieldDuration, derive: durationFromPace}
	toPace     = derivation{target: FieldPace, derive: paceFromDuration}
	toDistance = derivation{target: FieldDistance, derive: distanceFromDuration}
)

type transitionKey struct {
	state formState
	edit  Field
}

// MissingTwoOrMore has no entries: nothing can be derived from a single field.
var transitions = map[transitionKey]derivation{
	{formState{kind: stateComplete}, FieldDistance}: toDuration,
	{formState{kind: stateComplete}, FieldPace}:     toDuration,
	{formState{kind: stateComplete}, FieldDuration}: toPace,

	{formState{stateMissingOne, FieldDistance}, FieldDistance}: toDistance,
	{formState{stateMissingOne, FieldDistance}, FieldPace}:     toDistance,
	{formState{stateMissingOne, FieldDistance}, FieldDuration}: toDistance,

	{formState{stateMissingOne, FieldPace}, FieldDistance}: toPace,
	{formState{stateMissingOne, FieldPace}, FieldPace}:     toPace,
	{formState{stateMissingOne, FieldPace}, FieldDuration}: toPace,

	{formState{stateMissingOne, FieldDuration}, FieldDistance}: toDuration,
	{formState{stateMissingOne, FieldDuration}, FieldPace}:     toDuration,
	{formState{stateMissingOne, FieldDuration}, FieldDuration}: toDuration,
}

// Reconcile keeps duration = pace × distance after edited changed. It returns
// only the fields whose text differs from form. Malformed clock text yields
// a *FormatError and no update.
func Reconcile(form SegmentForm, edited Field) (Update, error) {
	d, ok := transitions[transitionKey{state: classify(form), edit: edited}]
	if !ok {
		return nil, nil
	}
	value, ok, err := d.derive(form)
	if err != nil || !ok {
		return nil, err
	}
	if value == form.Value(d.target) {
		return nil, nil
	}
	return Update{d.target: value}, nil
}

func durationFromPace(f SegmentForm) (string, bool, error) {
	km, err := ParseDistance(f.Distance)
	if err != nil {
		return "", false, nil
	}
	pace, err := ParseClock(f.Pace, PaceFields)
	if err != nil {
		return "", false, err
	}
	v, err := FormatClock(float64(pace)*km, DurationFields)
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func paceFromDuration(f SegmentForm) (string, bool, error) {
	km, err := ParseDistance(f.Distance)
	if err != nil || km <= 0 {
		return "", false, nil
	}
	dur, err := ParseClock(f.Duration, DurationFields)
	if err != nil {
		return "", false, err
	}
	v, err := FormatClock(float64(dur)/km, PaceFields)
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func distanceFromDuration(f SegmentForm) (string, bool, error) {
	pace, err := ParseClock(f.Pace, PaceFields)
	if err != nil {
		return "", false, err
	}
	if pace == 0 {
		return "", false, nil
	}
	dur, err := ParseClock(f.Duration, DurationFields)
	if err != nil {
		return "", false, err
	}
	return FormatDistance(float64(dur) / float64(pace)), true, nil
}
