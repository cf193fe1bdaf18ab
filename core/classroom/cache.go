package classroom

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
)

const classroomsPath = "/turmas/"

var (
	ErrNoClassroom         = errors.New("no classroom loaded")
	ErrStudentNotInRoll    = errors.New("student is not in the attendance roll")
	ErrNotTakingAttendance = errors.New("attendance is not being taken")
)

// AuthState tells whether requests can be made on behalf of a user.
type AuthState interface {
	IsAuthenticated() bool
}

// Cache holds the classrooms list, the classroom being viewed and its attendance roll.
// All mutations go through its methods.
type Cache struct {
	svc        *Service
	attendance AttendanceRepository
	auth       AuthState
	logger     core.Logger

	mu      sync.RWMutex
	list    []Classroom
	current *Classroom
	roll    []Attendance
	taking  bool
}

func NewCache(svc *Service, attendance AttendanceRepository, auth AuthState, logger core.Logger) *Cache {
	return &Cache{svc: svc, attendance: attendance, auth: auth, logger: logger}
}

// IDFromPath extracts the classroom id from a `/turmas/:id` path.
func IDFromPath(path string) string {
	i := strings.Index(path, classroomsPath)
	if i < 0 {
		return ""
	}
	id := path[i+len(classroomsPath):]
	if j := strings.IndexAny(id, "/?#"); j >= 0 {
		id = id[:j]
	}
	return id
}

// LoadClassrooms fetches up to core.AllPageSize classrooms.
// It returns an empty list, without fetching, when nobody is authenticated.
func (c *Cache) LoadClassrooms(ctx context.Context) ([]Classroom, error) {
	if c.auth != nil && !c.auth.IsAuthenticated() {
		c.mu.Lock()
		c.list = []Classroom{}
		c.mu.Unlock()
		return []Classroom{}, nil
	}
	page, err := c.svc.List(ctx, core.PageRequest{Page: 0, Size: core.AllPageSize})
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.list = page.Content
	c.mu.Unlock()
	return page.Content, nil
}

func (c *Cache) Classrooms() []Classroom {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Classroom(nil), c.list...)
}

// LoadClassroom resolves the classroom id from path and fetches it.
// Today's roll is fetched only when the classroom reports attendance as taken.
func (c *Cache) LoadClassroom(ctx context.Context, path string) (Classroom, error) {
	id := IDFromPath(path)
	if id == "" {
		return Classroom{}, errors.Wrapf(ErrNotFound, "no classroom id in %q", path)
	}
	cls, err := c.svc.Get(ctx, id)
	if err != nil {
		return Classroom{}, err
	}

	var roll []Attendance
	if cls.AttendanceTaken {
		rows, err := c.attendance.ListAttendance(ctx, id, core.Date{})
		if err != nil {
			return Classroom{}, errors.Wrap(err, "listing attendance")
		}
		roll = make([]Attendance, 0, len(rows))
		for _, row := range rows {
			roll = append(roll, row.Attendance())
		}
	}

	c.mu.Lock()
	c.current = &cls
	c.roll = dedupe(roll)
	c.taking = false
	c.mu.Unlock()
	return cls, nil
}

func (c *Cache) Current() (Classroom, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Classroom{}, false
	}
	return *c.current, true
}

func (c *Cache) ClearClassroom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.roll = nil
	c.taking = false
}

// Attendance returns a copy of the cached roll.
func (c *Cache) Attendance() []Attendance {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Attendance(nil), c.roll...)
}

func (c *Cache) Taking() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.taking
}

// UpdateAttendanceList applies fn to the roll. The result keeps at most one entry per student.
func (c *Cache) UpdateAttendanceList(fn func([]Attendance) []Attendance) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roll = dedupe(fn(append([]Attendance(nil), c.roll...)))
}

// dedupe keeps the first position and the last value of each student.
func dedupe(roll []Attendance) []Attendance {
	if roll == nil {
		return nil
	}
	idx := make(map[string]int, len(roll))
	out := make([]Attendance, 0, len(roll))
	for _, a := range roll {
		if i, ok := idx[a.Student.ID]; ok {
			out[i] = a
			continue
		}
		idx[a.Student.ID] = len(out)
		out = append(out, a)
	}
	return out
}

// StartAttendance enters attendance mode. A roll not taken yet starts with every student present.
func (c *Cache) StartAttendance() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return ErrNoClassroom
	}
	if !c.current.AttendanceTaken || len(c.roll) == 0 {
		roll := make([]Attendance, 0, len(c.current.Students))
		for _, s := range c.current.Students {
			roll = append(roll, Attendance{Student: s, Status: Present})
		}
		c.roll = roll
	}
	c.taking = true
	return nil
}

// SetStatus updates a student's entry in the roll, adding it back when a classroom student is missing.
func (c *Cache) SetStatus(studentID string, status Status) error {
	if _, err := ToBackendStatus(status); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.taking {
		return ErrNotTakingAttendance
	}
	for i := range c.roll {
		if c.roll[i].Student.ID == studentID {
			c.roll[i].Status = status
			return nil
		}
	}
	// students dropped from the roll are added back from the classroom
	if c.current != nil {
		for _, s := range c.current.Students {
			if s.ID == studentID {
				c.roll = append(c.roll, Attendance{Student: s, Status: status})
				return nil
			}
		}
	}
	return errors.Wrapf(ErrStudentNotInRoll, "%q", studentID)
}

// CancelAttendance leaves attendance mode, discarding unsaved changes.
func (c *Cache) CancelAttendance(ctx context.Context) error {
	cls, ok := c.Current()
	if !ok {
		return ErrNoClassroom
	}
	_, err := c.LoadClassroom(ctx, classroomsPath+cls.ID)
	return err
}

// SaveAttendance persists the roll: inserted the first time of the day, updated afterwards.
// The classroom is reloaded on success. inserted reports which of both happened.
func (c *Cache) SaveAttendance(ctx context.Context) (inserted bool, err error) {
	c.mu.RLock()
	if c.current == nil {
		c.mu.RUnlock()
		return false, ErrNoClassroom
	}
	if !c.taking {
		c.mu.RUnlock()
		return false, ErrNotTakingAttendance
	}
	cls := *c.current
	rows := make([]AttendanceRow, 0, len(c.roll))
	for _, a := range c.roll {
		row, rErr := a.Row()
		if rErr != nil {
			c.mu.RUnlock()
			return false, rErr
		}
		rows = append(rows, row)
	}
	c.mu.RUnlock()

	if cls.AttendanceTaken {
		_, err = c.attendance.UpdateAttendance(ctx, cls.ID, core.Date{}, rows)
	} else {
		_, err = c.attendance.InsertAttendance(ctx, cls.ID, core.Date{}, rows)
		inserted = true
	}
	if err != nil {
		return false, errors.Wrap(err, "saving attendance")
	}
	if _, err := c.LoadClassroom(ctx, classroomsPath+cls.ID); err != nil {
		return inserted, errors.Wrap(err, "reloading classroom")
	}
	return inserted, nil
}
