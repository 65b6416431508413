package hal

import "time"

// Note is a pitch from C4 to C6 on the natural (white key) scale.
type Note uint8

const (
	NoteC4 Note = iota
	NoteD4
	NoteE4
	NoteF4
	NoteG4
	NoteA4
	NoteB4
	NoteC5
	NoteD5
	NoteE5
	NoteF5
	NoteG5
	NoteA5
	NoteB5
	NoteC6
)

// Square wave periods in microseconds.
var notePeriodsUS = [...]uint32{
	3822, 3405, 3033, 2863, 2551, 2272, 2024, 1911,
	1702, 1516, 1431, 1275, 1136, 1012, 955,
}

var noteNames = [...]string{
	"C4", "D4", "E4", "F4", "G4", "A4", "B4",
	"C5", "D5", "E5", "F5", "G5", "A5", "B5", "C6",
}

// Valid reports whether n is in the note table.
func (n Note) Valid() bool { return int(n) < len(notePeriodsUS) }

// Period returns the square wave period of n, or 0 for an unknown note.
func (n Note) Period() time.Duration {
	if !n.Valid() {
		return 0
	}
	return time.Duration(notePeriodsUS[n]) * time.Microsecond
}

func (n Note) String() string {
	if !n.Valid() {
		return "?"
	}
	return noteNames[n]
}

// ParseNote maps a name such as "C5" to a Note.
func ParseNote(s string) (Note, bool) {
	for i, name := range noteNames {
		if name == s {
			return Note(i), true
		}
	}
	return 0, false
}
