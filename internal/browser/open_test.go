package browser

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		url string
		ok  bool
	}{
		{"http://localhost:5173/article/1", true},
		{"https://blog.example.com/article/42", true},
		{"file:///etc/passwd", false},
		{"javascript:alert(1)", false},
		{"/article/1", false},
		{"http://", false},
		{"://bad", false},
	}
	for _, tc := range tests {
		err := Validate(tc.url)
		if tc.ok && err != nil {
			t.Errorf("Validate(%q) = %v, want nil", tc.url, err)
		}
		if !tc.ok && !errors.Is(err, ErrUnsupportedURL) {
			t.Errorf("Validate(%q) = %v, want ErrUnsupportedURL", tc.url, err)
		}
	}
}

func TestCommand(t *testing.T) {
	const u = "https://blog.example.com/article/1"
	tests := map[string]string{
		"darwin":  "open " + u,
		"linux":   "xdg-open " + u,
		"windows": "rundll32 url.dll,FileProtocolHandler " + u,
	}
	for goos, want := range tests {
		cmd, err := command(goos, u)
		if err != nil {
			t.Fatalf("command(%s): %v", goos, err)
		}
		if got := strings.Join(cmd.Args, " "); got != want {
			t.Errorf("command(%s) = %q, want %q", goos, got, want)
		}
	}

	if _, err := command("plan9", u); err == nil {
		t.Error("expected error for unsupported OS")
	}
}

func TestOpenRejectsBeforeLaunch(t *testing.T) {
	if err := Open("file:///tmp/x"); !errors.Is(err, ErrUnsupportedURL) {
		t.Errorf("Open = %v, want ErrUnsupportedURL", err)
	}
}
