package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/healthdesk/healthdesk/internal/domain/directory"
	"github.com/healthdesk/healthdesk/internal/session"
)

// State is the workflow's position in the selection flow.
type State int

const (
	StateIdle State = iota
	StateSpecializationChosen
	StateDoctorChosen
	StateSlotContextLoaded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpecializationChosen:
		return "specialization-chosen"
	case StateDoctorChosen:
		return "doctor-chosen"
	case StateSlotContextLoaded:
		return "slot-context-loaded"
	}
	return "unknown"
}

// ErrStaleSlots is returned when a slot fetch completed after the (doctor,
// date) selection it was issued for had already changed.
var ErrStaleSlots = errors.New("booked-slot context superseded by a newer selection")

// SlotContext is the loaded advisory data bound to the selection it was
// fetched for.
type SlotContext struct {
	DoctorName string
	Date       string
	Slots      BookedSlots
}

// Workflow guides one user from no selection to a submitted appointment:
// specialization, then a doctor within it, then a date (which loads the
// doctor's booked slots), then time and reason, then submit.
//
// Each change of doctor or date invalidates the slot context and bumps a
// fetch tag; a fetch result is applied only while its tag is current, so an
// out-of-order response can never be shown for a stale selection.
type Workflow struct {
	svc    *Service
	user   session.User
	logger zerolog.Logger

	mu             sync.Mutex
	specialization string
	doctor         *directory.Doctor
	date           string
	timeOfDay      string
	reason         string
	slots          *SlotContext
	fetchTag       uint64
}

func NewWorkflow(svc *Service, user session.User, logger zerolog.Logger) *Workflow {
	return &Workflow{svc: svc, user: user, logger: logger}
}

// ChooseSpecialization starts (or restarts) the flow. Any previously chosen
// doctor, date, time, and slot context are cleared.
func (w *Workflow) ChooseSpecialization(spec string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.specialization = spec
	w.doctor = nil
	w.date = ""
	w.timeOfDay = ""
	w.slots = nil
	w.fetchTag++
}

// ChooseDoctor selects a doctor; the doctor must belong to the chosen
// specialization. The slot context is invalidated.
func (w *Workflow) ChooseDoctor(d directory.Doctor) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.specialization == "" {
		return fmt.Errorf("choose a specialization first")
	}
	if d.Specialization != w.specialization {
		return fmt.Errorf("doctor %s is a %s, not a %s", d.Name, d.Specialization, w.specialization)
	}
	w.doctor = &d
	w.timeOfDay = ""
	w.slots = nil
	w.fetchTag++
	return nil
}

// ChooseDate selects the appointment date (YYYY-MM-DD). The slot context is
// invalidated.
func (w *Workflow) ChooseDate(date string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.doctor == nil {
		return fmt.Errorf("choose a doctor first")
	}
	if !ValidDate(date) {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}
	w.date = date
	w.timeOfDay = ""
	w.slots = nil
	w.fetchTag++
	return nil
}

// LoadSlots fetches the booked-slot context for the current (doctor, date)
// pair. If the selection changes while the fetch is in flight the result is
// discarded and ErrStaleSlots returned.
func (w *Workflow) LoadSlots(ctx context.Context) (*SlotContext, error) {
	doctorName, date, tag, err := w.beginSlotFetch()
	if err != nil {
		return nil, err
	}
	slots, err := w.svc.BookedSlots(ctx, doctorName, date)
	if err != nil {
		return nil, err
	}
	sc := &SlotContext{DoctorName: doctorName, Date: date, Slots: *slots}
	if !w.applySlots(tag, sc) {
		w.logger.Debug().Str("doctor", doctorName).Str("date", date).
			Msg("discarding stale booked-slot response")
		return nil, ErrStaleSlots
	}
	return sc, nil
}

func (w *Workflow) beginSlotFetch() (doctorName, date string, tag uint64, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.doctor == nil || w.date == "" {
		return "", "", 0, fmt.Errorf("doctor and date must be chosen before loading slots")
	}
	return w.doctor.Name, w.date, w.fetchTag, nil
}

// applySlots installs a fetched slot context if its tag is still current.
func (w *Workflow) applySlots(tag uint64, sc *SlotContext) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if tag != w.fetchTag {
		return false
	}
	w.slots = sc
	return true
}

// SetTime records the requested time (HH:MM). Required before submit.
func (w *Workflow) SetTime(t string) error {
	if _, err := parseClock(t); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.date == "" {
		return fmt.Errorf("choose a date first")
	}
	w.timeOfDay = t
	return nil
}

// SetReason records the visit reason. Required before submit.
func (w *Workflow) SetReason(r string) error {
	if r == "" {
		return fmt.Errorf("a reason is required")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reason = r
	return nil
}

// Conflicts reports whether t collides with the loaded booked slots.
// Advisory: it never blocks submission, the backend decides.
func (w *Workflow) Conflicts(t string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.slots == nil {
		return false
	}
	return w.slots.Slots.Overlaps(t)
}

// Slots returns the currently loaded slot context, nil when none is loaded.
func (w *Workflow) Slots() *SlotContext {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.slots == nil {
		return nil
	}
	sc := *w.slots
	return &sc
}

// State derives the workflow position from the current selections.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.slots != nil:
		return StateSlotContextLoaded
	case w.doctor != nil:
		return StateDoctorChosen
	case w.specialization != "":
		return StateSpecializationChosen
	}
	return StateIdle
}

// ReadyToSubmit reports whether every required input is present.
func (w *Workflow) ReadyToSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doctor != nil && w.date != "" && w.timeOfDay != "" && w.reason != ""
}

// Submit posts the booking. Patient identity fields default to the signed-in
// user's profile. On success the workflow resets to idle; on failure every
// selection is kept so the user can adjust and retry.
func (w *Workflow) Submit(ctx context.Context) (*Appointment, error) {
	w.mu.Lock()
	if w.doctor == nil || w.date == "" {
		w.mu.Unlock()
		return nil, fmt.Errorf("doctor and date must be chosen")
	}
	if w.timeOfDay == "" {
		w.mu.Unlock()
		return nil, fmt.Errorf("a time is required")
	}
	if w.reason == "" {
		w.mu.Unlock()
		return nil, fmt.Errorf("a reason is required")
	}
	payload := AppointmentCreate{
		PatientName:     w.user.Name,
		PatientEmail:    w.user.Email,
		PatientPhone:    w.user.Phone,
		DoctorName:      w.doctor.Name,
		AppointmentDate: w.date,
		AppointmentTime: w.timeOfDay,
		Reason:          w.reason,
	}
	w.mu.Unlock()

	created, err := w.svc.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	w.Reset()
	return created, nil
}

// Reset returns the workflow to idle.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.specialization = ""
	w.doctor = nil
	w.date = ""
	w.timeOfDay = ""
	w.reason = ""
	w.slots = nil
	w.fetchTag++
}
