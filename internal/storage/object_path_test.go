package storage

import (
	"strings"
	"testing"
)

func TestBuildObjectPath(t *testing.T) {
	key := buildObjectPath("photo", "My Portrait", "JPG")

	if !strings.HasPrefix(key, "photo/") {
		t.Fatalf("expected category prefix, got %s", key)
	}
	if !strings.HasSuffix(key, "/my-portrait.jpg") {
		t.Fatalf("expected sanitized file name, got %s", key)
	}

	// category/yyyy/mm/dd/name.ext
	if parts := strings.Split(key, "/"); len(parts) != 5 {
		t.Fatalf("expected 5 path segments, got %d in %s", len(parts), key)
	}
}

func TestBuildObjectPathDefaults(t *testing.T) {
	key := buildObjectPath("", "", "")

	if !strings.HasPrefix(key, "misc/") {
		t.Fatalf("expected misc fallback category, got %s", key)
	}
	if !strings.HasSuffix(key, ".bin") {
		t.Fatalf("expected bin fallback extension, got %s", key)
	}
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{".PNG", "png"},
		{"jpg", "jpg"},
		{"  .webp ", "webp"},
		{"", "bin"},
	}

	for _, tt := range tests {
		if got := normalizeExtension(tt.in); got != tt.want {
			t.Errorf("normalizeExtension(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoinPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", "photo/a.jpg", "photo/a.jpg"},
		{"media", "photo/a.jpg", "media/photo/a.jpg"},
		{"/media/", "/photo/a.jpg", "media/photo/a.jpg"},
	}

	for _, tt := range tests {
		if got := joinPrefix(tt.prefix, tt.key); got != tt.want {
			t.Errorf("joinPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
		}
	}
}

func TestSanitizeToken(t *testing.T) {
	if got := SanitizeToken("Hello World!.png"); got != "helloworldpng" {
		t.Errorf("unexpected token: %q", got)
	}
}
