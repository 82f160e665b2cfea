package store

import (
	"database/sql"
	"fmt"

	"github.com/sadopc/stride/internal/workout"
)

// segmentTable describes one of the two segment tables. Names are constants,
// never user input.
type segmentTable struct {
	name  string
	owner string
}

var (
	workoutSegments  = segmentTable{name: "workout_segments", owner: "workout_id"}
	templateSegments = segmentTable{name: "template_segments", owner: "template_id"}
)

func (t segmentTable) insert(tx *sql.Tx, ownerID int64, segs []workout.Segment) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, position, type, distance, pace, duration, repetitions) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.name, t.owner,
	)
	for i, seg := range segs {
		if _, err := tx.Exec(query, ownerID, i, string(seg.Type), seg.Distance, seg.Pace, seg.Duration, seg.Reps()); err != nil {
			return fmt.Errorf("insert segment %d: %w", i+1, err)
		}
	}
	return nil
}

func (t segmentTable) replace(tx *sql.Tx, ownerID int64, segs []workout.Segment) error {
	if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, t.name, t.owner), ownerID); err != nil {
		return fmt.Errorf("delete segments: %w", err)
	}
	return t.insert(tx, ownerID, segs)
}

// load returns segments grouped by owner ID, in position order. ownerFilter
// is an SQL condition on the owner column, e.g. "IN (SELECT ...)".
func (t segmentTable) load(db *sql.DB, ownerFilter string, args ...any) (map[int64][]workout.Segment, error) {
	query := fmt.Sprintf(
		`SELECT %s, type, distance, pace, duration, repetitions FROM %s WHERE %s %s ORDER BY %s, position`,
		t.owner, t.name, t.owner, ownerFilter, t.owner,
	)
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("load segments: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]workout.Segment)
	for rows.Next() {
		var ownerID int64
		var typ string
		var seg workout.Segment
		if err := rows.Scan(&ownerID, &typ, &seg.Distance, &seg.Pace, &seg.Duration, &seg.Repetitions); err != nil {
			return nil, err
		}
		seg.Type = workout.SegmentType(typ)
		out[ownerID] = append(out[ownerID], seg)
	}
	return out, rows.Err()
}
