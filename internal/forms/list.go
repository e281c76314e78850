// ABOUTME: Index-based editing helpers shared by the nested form lists
// ABOUTME: Out-of-range indexes are errors, never panics

package forms

import (
	"errors"
	"fmt"
)

// ErrIndex is returned when a row index is out of range
var ErrIndex = errors.New("row index out of range")

func checkIndex(n, i int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d (have %d rows)", ErrIndex, i, n)
	}
	return nil
}

func updateAt[T any](rows []T, i int, v T) error {
	if err := checkIndex(len(rows), i); err != nil {
		return err
	}
	rows[i] = v
	return nil
}

func removeAt[T any](rows []T, i int) ([]T, error) {
	if err := checkIndex(len(rows), i); err != nil {
		return rows, err
	}
	return append(rows[:i:i], rows[i+1:]...), nil
}

// moveTo shifts the row at from to position to, keeping the others in order
func moveTo[T any](rows []T, from, to int) error {
	if err := checkIndex(len(rows), from); err != nil {
		return err
	}
	if err := checkIndex(len(rows), to); err != nil {
		return err
	}
	v := rows[from]
	if from < to {
		copy(rows[from:to], rows[from+1:to+1])
	} else {
		copy(rows[to+1:from+1], rows[to:from])
	}
	rows[to] = v
	return nil
}
