package hal

import "testing"

func TestButtonPinRead(t *testing.T) {
	pin := NewButtonPin("BTN")

	if _, err := pin.Read(); err == nil {
		t.Fatal("expected error before Configure")
	}
	if err := pin.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	level, err := pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatal("expected high while released")
	}

	pin.Press()
	level, err = pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if level {
		t.Fatal("expected low while held")
	}
	if !pin.Held() {
		t.Fatal("expected Held after Press")
	}

	pin.Release()
	level, err = pin.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !level {
		t.Fatal("expected high after release")
	}
}

func TestButtonPinConfigure(t *testing.T) {
	pin := NewButtonPin("BTN")
	if err := pin.Configure(GPIOModeOutput, GPIOPullNone); err == nil {
		t.Fatal("expected output mode to be rejected")
	}
	if err := pin.Configure(GPIOModeInput, GPIOPullDown); err == nil {
		t.Fatal("expected pull-down to be rejected")
	}
	if err := pin.Write(true); err == nil {
		t.Fatal("expected Write to fail")
	}
}

func TestButtonGPIO(t *testing.T) {
	a, b := NewButtonPin("A"), NewButtonPin("B")
	g := NewButtonGPIO(a, b)
	if g.PinCount() != 2 {
		t.Fatalf("PinCount = %d, want 2", g.PinCount())
	}
	if g.Pin(PinButtonA) != a || g.Pin(PinButtonB) != b {
		t.Fatal("pins out of order")
	}
	if g.Pin(2) != nil || g.Pin(-1) != nil {
		t.Fatal("expected nil for out of range pin")
	}
}

func TestNoteTable(t *testing.T) {
	if got := NoteC5.Period().Microseconds(); got != 1911 {
		t.Fatalf("C5 period = %dus, want 1911", got)
	}
	if NoteC6.String() != "C6" {
		t.Fatalf("C6 name = %q", NoteC6.String())
	}
	if Note(200).Valid() || Note(200).Period() != 0 {
		t.Fatal("expected unknown note to be invalid")
	}
	n, ok := ParseNote("F5")
	if !ok || n != NoteF5 {
		t.Fatalf("ParseNote(F5) = %v, %v", n, ok)
	}
	if _, ok := ParseNote("H2"); ok {
		t.Fatal("expected ParseNote to reject H2")
	}
}
