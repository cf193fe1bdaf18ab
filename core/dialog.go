package core

import "github.com/pkg/errors"

type DialogState int

const (
	DialogClosed DialogState = iota
	DialogOpen
	DialogSubmitting
)

func (s DialogState) String() string {
	switch s {
	case DialogOpen:
		return "open"
	case DialogSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

var ErrDialogNotOpen = errors.New("dialog is not open")

// Dialog is the lifecycle shared by every create/edit form:
// closed -> open (prefilled when editing) -> submitting -> closed on success | open with error.
// The same form serves creation and edition; Editing is nil when creating.
type Dialog[T any] struct {
	state   DialogState
	Editing *T
	Err     error
}

func (d *Dialog[T]) State() DialogState { return d.state }

// IsEdit reports whether the dialog was opened on an existing entity.
func (d *Dialog[T]) IsEdit() bool { return d.Editing != nil }

func (d *Dialog[T]) Open(existing *T) {
	d.state = DialogOpen
	d.Editing = existing
	d.Err = nil
}

func (d *Dialog[T]) Close() {
	d.state = DialogClosed
	d.Editing = nil
	d.Err = nil
}

// Submit runs fn while in the submitting state.
// The dialog closes when fn succeeds and stays open, holding the error, when it fails.
func (d *Dialog[T]) Submit(fn func() error) error {
	if d.state != DialogOpen {
		return ErrDialogNotOpen
	}
	d.state = DialogSubmitting
	if err := fn(); err != nil {
		d.state = DialogOpen
		d.Err = err
		return err
	}
	d.Close()
	return nil
}
