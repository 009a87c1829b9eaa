package xlsx

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := NewError(KindWorksheetNotFound, "No sheet named <%s>", "Data")
	if err.Error() != "No sheet named <Data>" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Kind != KindWorksheetNotFound {
		t.Errorf("Kind = %v", err.Kind)
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapError(KindIO, cause, "Failed to write %q", "out.xlsx")
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	wrapped := fmt.Errorf("saving: %w", err)
	if !IsKind(wrapped, KindIO) {
		t.Error("IsKind failed through an extra wrap layer")
	}
	if ErrKind(wrapped) != KindIO {
		t.Errorf("ErrKind = %v", ErrKind(wrapped))
	}
}

func TestErrKindOnForeignError(t *testing.T) {
	if ErrKind(errors.New("plain")) != KindCustom {
		t.Error("foreign error did not map to custom kind")
	}
	if IsKind(errors.New("plain"), KindIO) {
		t.Error("IsKind matched a foreign error")
	}
}

func TestErrorKindString(t *testing.T) {
	if KindInvalidCoordinate.String() != "invalid coordinate" {
		t.Errorf("String() = %q", KindInvalidCoordinate.String())
	}
	if ErrorKind(99).String() != "ErrorKind(99)" {
		t.Errorf("unknown kind String() = %q", ErrorKind(99).String())
	}
}
