package uploads

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestStorage_Save_AndReadBack(t *testing.T) {
	s := NewStorage(t.TempDir())

	data := []byte("fake png bytes")
	path, err := s.Save("client-1", "2026-08-28", "image/png", data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.HasPrefix(path, "client-1/2026-08-28/") {
		t.Errorf("Unexpected path layout: %s", path)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("Expected .png extension, got %s", path)
	}

	got, err := s.ReadBlob(path)
	if err != nil {
		t.Fatalf("Expected readable blob, got %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Read data does not match written data")
	}
}

func TestStorage_Save_UnsupportedType(t *testing.T) {
	s := NewStorage(t.TempDir())

	_, err := s.Save("client-1", "2026-08-28", "image/gif", []byte("gif"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Expected ErrUnsupportedType, got %v", err)
	}
}

func TestStorage_Save_TooLarge(t *testing.T) {
	s := NewStorage(t.TempDir())

	_, err := s.Save("client-1", "2026-08-28", "image/jpeg", make([]byte, MaxImageSize+1))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}
}

func TestStorage_ReadBlob_RejectsTraversal(t *testing.T) {
	s := NewStorage(t.TempDir())

	_, err := s.ReadBlob("../../../etc/passwd")
	if !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Expected ErrInvalidPath, got %v", err)
	}
}
