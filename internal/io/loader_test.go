package io

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"arnold-cat-map/internal/catmap"
	"arnold-cat-map/internal/core"
)

func newTestLoader() *ImageLoader {
	logger, _ := logtest.NewNullLogger()
	return NewImageLoader(logger)
}

func TestIsSupportedImageFormat(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"tsubaki.jpg", true},
		{"dir/IMG.JPEG", true},
		{"scan.tif", true},
		{"a.b/photo.png", true},
		{"notes.txt", false},
		{"noext", false},
		{"archive.png.gz", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isSupportedImageFormat(tt.path); got != tt.want {
				t.Errorf("isSupportedImageFormat(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheckFile(t *testing.T) {
	l := newTestLoader()
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.jpg")
	err := l.CheckFile(missing)
	if !errors.Is(err, core.ErrImageNotFound) {
		t.Fatalf("err = %v, want core.ErrImageNotFound", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q does not name the absolute path", err)
	}

	if err := l.CheckFile(filepath.Join(dir, "notes.txt")); !errors.Is(err, core.ErrUnsupportedFormat) {
		t.Errorf("err = %v, want core.ErrUnsupportedFormat", err)
	}

	present := filepath.Join(dir, "present.png")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := l.CheckFile(present); err != nil {
		t.Errorf("CheckFile(existing) = %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	l := newTestLoader()
	g, _ := catmap.NewGrid(3, 2)
	for i := range g.Pix {
		g.Pix[i] = catmap.RGB(uint8(40*i), uint8(255-40*i), 7)
	}

	path := filepath.Join(t.TempDir(), "grid.png")
	if err := l.Save(g, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Equal(g) {
		t.Errorf("PNG round trip changed pixels: got %06x, want %06x", got.Pix, g.Pix)
	}
}

func TestSaveRejectsBadInput(t *testing.T) {
	l := newTestLoader()
	g, _ := catmap.NewGrid(1, 1)
	if err := l.Save(g, filepath.Join(t.TempDir(), "out.gif")); !errors.Is(err, core.ErrUnsupportedFormat) {
		t.Errorf("err = %v, want core.ErrUnsupportedFormat", err)
	}
	if err := l.Save(&catmap.Grid{}, "out.png"); !errors.Is(err, catmap.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestSupportedExtensions(t *testing.T) {
	l := newTestLoader()
	exts := l.SupportedExtensions()
	if len(exts) == 0 {
		t.Fatal("no supported extensions")
	}
	for _, ext := range exts {
		if !isSupportedImageFormat("image" + ext) {
			t.Errorf("%s listed but rejected", ext)
		}
	}

	exts[0] = ".gif"
	if l.SupportedExtensions()[0] == ".gif" {
		t.Error("SupportedExtensions exposes the internal list")
	}
}
