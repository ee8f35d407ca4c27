package main

import (
	"errors"
	"testing"

	"github.com/ironsheep/lane-tools-mcp/internal/opencv"
)

func TestSelectBackend(t *testing.T) {
	for _, name := range []string{"", "go"} {
		b, err := selectBackend(name)
		if err != nil {
			t.Fatalf("selectBackend(%q) failed: %v", name, err)
		}
		if b.Name != "go" {
			t.Errorf("selectBackend(%q): got %s, want go", name, b.Name)
		}
	}

	if _, err := selectBackend("cuda"); err == nil {
		t.Error("unknown backend should fail")
	}

	b, err := selectBackend("opencv")
	if opencv.Available() {
		if err != nil || b.Name != opencv.Name {
			t.Errorf("opencv backend: got %s, %v", b.Name, err)
		}
	} else if !errors.Is(err, opencv.ErrUnavailable) {
		t.Errorf("opencv without gocv tag: got %v, want ErrUnavailable", err)
	}
}
