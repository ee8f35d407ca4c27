//go:build !gocv

package opencv

import (
	"errors"
	"testing"
)

func TestNewBackend_Unavailable(t *testing.T) {
	if Available() {
		t.Fatal("Available should be false without the gocv tag")
	}
	b, err := NewBackend()
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
	if b.Edges != nil || b.Segments != nil || b.Drawer != nil {
		t.Error("stub backend should carry no capabilities")
	}
}
