package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentFormRoundTrip(t *testing.T) {
	s := Segment{Type: Interval, Distance: 0.4, Pace: 225, Duration: 90, Repetitions: 6}
	f := FormFromSegment(s)
	assert.Equal(t, SegmentForm{Type: Interval, Distance: "0.40", Pace: "03:45", Duration: "00:01:30", Repetitions: 6}, f)

	back, err := f.Segment()
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestFormFromSegment_EmptyFields(t *testing.T) {
	f := FormFromSegment(Segment{Type: Easy})
	assert.Equal(t, "", f.Distance)
	assert.Equal(t, "", f.Pace)
	assert.Equal(t, "", f.Duration)
	assert.Equal(t, 1, f.Repetitions)
}

func TestSegmentForm_Invalid(t *testing.T) {
	_, err := SegmentForm{Type: "swim", Repetitions: 1}.Segment()
	assert.Error(t, err)

	_, err = SegmentForm{Type: Easy, Distance: "x", Repetitions: 1}.Segment()
	assert.ErrorContains(t, err, "distance")

	_, err = SegmentForm{Type: Easy, Pace: "5:6:7:8", Repetitions: 1}.Segment()
	assert.ErrorContains(t, err, "pace")

	_, err = SegmentForm{Type: Easy, Duration: "aa", Repetitions: 1}.Segment()
	assert.ErrorContains(t, err, "duration")

	_, err = SegmentForm{Type: Easy, Repetitions: 0}.Segment()
	assert.ErrorContains(t, err, "repetitions")
}

func TestParseDistance(t *testing.T) {
	for text, want := range map[string]float64{"": 0, "10": 10, "5.25": 5.25, "5,5": 5.5, " 3 ": 3} {
		got, err := ParseDistance(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got, text)
	}
	for _, text := range []string{"-1", "abc", "NaN", "Inf"} {
		_, err := ParseDistance(text)
		assert.Error(t, err, text)
	}
}

func TestWorkoutTotals(t *testing.T) {
	w := Workout{Segments: []Segment{
		{Type: Easy, Distance: 2, Duration: 720},
		{Type: Interval, Distance: 0.4, Duration: 90, Repetitions: 6},
	}}
	assert.InDelta(t, 4.4, w.Distance(), 1e-9)
	assert.Equal(t, int64(1260), w.Duration())
}

func TestParseSegmentType(t *testing.T) {
	st, err := ParseSegmentType(" tempo ")
	require.NoError(t, err)
	assert.Equal(t, Tempo, st)

	_, err = ParseSegmentType("jog")
	assert.Error(t, err)
}
