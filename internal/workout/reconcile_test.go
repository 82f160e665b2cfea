package workout

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func form(distance, pace, duration string) SegmentForm {
	return SegmentForm{Type: Easy, Distance: distance, Pace: pace, Duration: duration, Repetitions: 1}
}

func TestReconcile_DerivesMissingDuration(t *testing.T) {
	u, err := Reconcile(form("10", "05:00", ""), FieldPace)
	require.NoError(t, err)
	assert.Equal(t, Update{FieldDuration: "00:50:00"}, u)
}

// Every edited field × missing field combination derives the missing field.
func TestReconcile_MissingOneMatrix(t *testing.T) {
	cases := []struct {
		missing Field
		form    SegmentForm
		want    string
	}{
		{FieldDistance, form("", "05:00", "00:50:00"), "10.00"},
		{FieldPace, form("10", "", "00:50:00"), "05:00"},
		{FieldDuration, form("10", "05:00", ""), "00:50:00"},
	}
	for _, c := range cases {
		for _, edited := range Fields {
			t.Run(fmt.Sprintf("missing_%s_edited_%s", c.missing, edited), func(t *testing.T) {
				u, err := Reconcile(c.form, edited)
				require.NoError(t, err)
				assert.Equal(t, Update{c.missing: c.want}, u)
			})
		}
	}
}

func TestReconcile_Complete(t *testing.T) {
	tests := []struct {
		name   string
		form   SegmentForm
		edited Field
		want   Update
	}{
		{"distance edit recomputes duration", form("12", "05:00", "00:50:00"), FieldDistance, Update{FieldDuration: "01:00:00"}},
		{"pace edit recomputes duration", form("10", "04:30", "00:50:00"), FieldPace, Update{FieldDuration: "00:45:00"}},
		{"duration edit recomputes pace", form("10", "05:00", "00:40:00"), FieldDuration, Update{FieldPace: "04:00"}},
		{"consistent distance edit is a no-op", form("10", "05:00", "00:50:00"), FieldDistance, nil},
		{"consistent duration edit is a no-op", form("10", "05:00", "00:50:00"), FieldDuration, nil},
		{"zero distance skips pace", form("0", "05:00", "00:40:00"), FieldDuration, nil},
		{"non-numeric distance skips duration", form("abc", "05:00", "00:40:00"), FieldDistance, nil},
		{"two-field duration is minutes", form("5", "05:00", "20:00"), FieldDuration, Update{FieldPace: "04:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Reconcile(tt.form, tt.edited)
			require.NoError(t, err)
			assert.Equal(t, tt.want, u)
		})
	}
}

func TestReconcile_TwoOrMoreMissing(t *testing.T) {
	forms := []SegmentForm{
		form("", "05:00", ""),
		form("10", "", ""),
		form("", "", "00:50:00"),
		form("", "", ""),
	}
	for _, f := range forms {
		for _, edited := range Fields {
			u, err := Reconcile(f, edited)
			require.NoError(t, err)
			assert.True(t, u.Empty(), "form %+v edited %s should not update, got %v", f, edited, u)
		}
	}
}

func TestReconcile_ZeroDivisors(t *testing.T) {
	u, err := Reconcile(form("", "00:00", "00:50:00"), FieldDuration)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = Reconcile(form("0", "", "00:50:00"), FieldDistance)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestReconcile_MalformedClock(t *testing.T) {
	f := form("10", "5:xx", "")
	u, err := Reconcile(f, FieldPace)
	var fe *FormatError
	require.True(t, errors.As(err, &fe), "expected FormatError, got %v", err)
	assert.Nil(t, u)

	_, err = Reconcile(form("", "05:00", "1:99:00"), FieldDuration)
	assert.True(t, errors.As(err, &fe))

	_, err = Reconcile(form("10", "9223372036854775807:00", ""), FieldPace)
	require.True(t, errors.As(err, &fe), "oversized pace should be a FormatError, got %v", err)
	var re *RangeError
	assert.False(t, errors.As(err, &re))
}

func TestReconcile_Idempotent(t *testing.T) {
	forms := []struct {
		f      SegmentForm
		edited Field
	}{
		{form("10", "05:00", ""), FieldPace},
		{form("", "05:00", "00:50:00"), FieldDuration},
		{form("7.3", "", "00:41:13"), FieldDuration},
		{form("12", "05:00", "00:50:00"), FieldDistance},
		{form("7", "05:00", "00:33:33"), FieldDuration},
	}
	for _, tc := range forms {
		u, err := Reconcile(tc.f, tc.edited)
		require.NoError(t, err)
		require.False(t, u.Empty())
		next := u.Apply(tc.f)

		again, err := Reconcile(next, tc.edited)
		require.NoError(t, err)
		assert.True(t, again.Empty(), "second pass on %+v should be a no-op, got %v", next, again)
	}
}

func TestReconcile_UnknownField(t *testing.T) {
	u, err := Reconcile(form("10", "05:00", ""), Field(9))
	require.NoError(t, err)
	assert.Nil(t, u)
}

// TestReconcile_DurationMatchesPaceTimesDistance property-tests the derived
// duration against pace × distance.
func TestReconcile_DurationMatchesPaceTimesDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 500; trial++ {
		km := float64(rng.Intn(5000)) / 100 // 0.00–49.99
		paceSecs := rng.Intn(900)          // 0–14:59 per km
		pace, err := FormatClock(float64(paceSecs), PaceFields)
		require.NoError(t, err)

		u, err := Reconcile(form(FormatDistance(km), pace, ""), FieldDistance)
		require.NoError(t, err)
		require.Contains(t, u, FieldDuration, "trial %d", trial)

		got, err := ParseClock(u[FieldDuration], DurationFields)
		require.NoError(t, err)
		assert.LessOrEqual(t, math.Abs(float64(got)-float64(paceSecs)*km), 1.0,
			"trial %d: %s km at %s gave %s", trial, FormatDistance(km), pace, u[FieldDuration])
	}
}

func TestUpdateApply(t *testing.T) {
	f := form("10", "05:00", "")
	got := Update{FieldDuration: "00:50:00"}.Apply(f)
	assert.Equal(t, "00:50:00", got.Duration)
	assert.Equal(t, "10", got.Distance)
	assert.Equal(t, "05:00", got.Pace)

	assert.Equal(t, f, Update(nil).Apply(f))
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "distance", FieldDistance.String())
	assert.Equal(t, "pace", FieldPace.String())
	assert.Equal(t, "duration", FieldDuration.String())
	assert.Equal(t, "unknown", Field(5).String())
}
