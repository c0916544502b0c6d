package sharedcounter

import "fmt"

// unit is a launched goroutine together with what is needed to join it.
type unit struct {
	id   int
	done chan struct{}
	err  error // written before done is closed
}

// spawn runs fn in a new goroutine. A panic in fn is recovered at the
// goroutine boundary and turned into an ErrUnitPanicked error, so one
// failing unit does not take the whole process down with it.
func spawn(id int, fn func() error) *unit {
	u := &unit{id: id, done: make(chan struct{})}
	go func() {
		defer close(u.done)
		defer func() {
			if r := recover(); r != nil {
				u.err = fmt.Errorf("unit %d: %w: %v", id, ErrUnitPanicked, r)
			}
		}()
		u.err = fn()
	}()
	return u
}

// join blocks until the unit has terminated and returns its error.
func (u *unit) join() error {
	<-u.done
	return u.err
}
