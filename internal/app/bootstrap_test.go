package app

import "testing"

func TestListenAddr(t *testing.T) {
	for in, want := range map[string]string{
		"8080":  ":8080",
		":8080": ":8080",
		" 3000": ":3000",
	} {
		got, err := ListenAddr(in)
		if err != nil {
			t.Fatalf("ListenAddr(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ListenAddr(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ListenAddr("   "); err == nil {
		t.Fatalf("expected error for empty port")
	}
}
