// Package console is the admin dashboard state machine. It holds no
// rendering code; a front end drives it and renders its state.
package console

import (
	"errors"
	"os"
)

// State is the edit state of one record.
type State int

const (
	Viewing State = iota
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrRecordNotFound    = errors.New("record not found")
	ErrAlreadyEditing    = errors.New("another record in this collection is being edited")
	ErrNotEditing        = errors.New("record is not being edited")
	ErrBusy              = errors.New("record is being submitted")
	ErrNotDeletable      = errors.New("the profile cannot be deleted")
)

// Staged is a file chosen for an edit. It stays local until Submit.
type Staged struct {
	Field       string
	Path        string
	Name        string
	Size        int64
	ContentType string
}

func stage(field, path string) (Staged, error) {
	f, err := os.Open(path)
	if err != nil {
		return Staged{}, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return Staged{}, err
	}
	if info.IsDir() {
		return Staged{}, errors.New(path + " is a directory")
	}
	return Staged{
		Field:       field,
		Path:        path,
		Name:        info.Name(),
		Size:        info.Size(),
		ContentType: sniff(f, info.Name()),
	}, nil
}
