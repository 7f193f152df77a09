package clipboard

import (
	"errors"
	"testing"
)

func TestServiceCopyWritesText(t *testing.T) {
	var written string
	service := &Service{
		writeAll:    func(text string) error { written = text; return nil },
		unsupported: func() bool { return false },
	}
	if err := service.Copy("proj\n"); err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	if written != "proj\n" {
		t.Fatalf("expected clipboard to hold %q, got %q", "proj\n", written)
	}
}

func TestServiceCopyUnsupported(t *testing.T) {
	service := &Service{
		writeAll:    func(string) error { t.Fatalf("writeAll must not be called"); return nil },
		unsupported: func() bool { return true },
	}
	if err := service.Copy("proj\n"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestServiceCopyWrapsFailure(t *testing.T) {
	failure := errors.New("xclip exited")
	service := &Service{
		writeAll:    func(string) error { return failure },
		unsupported: func() bool { return false },
	}
	if err := service.Copy("proj\n"); !errors.Is(err, failure) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
}
