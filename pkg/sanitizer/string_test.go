package sanitizer

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"trims", "  Team offsite  ", "Team offsite"},
		{"collapses whitespace", "Team \t offsite\n\nplanning", "Team offsite planning"},
		{"strips control chars", "Team\x00 offsite\x07", "Team offsite"},
		{"idempotent", "Team offsite", "Team offsite"},
		{"unicode preserved", "Café  meetup", "Café meetup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.expected {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	input := "  a\tb  c  "
	once := NormalizeText(input)
	if twice := NormalizeText(once); twice != once {
		t.Errorf("not idempotent: %q -> %q", once, twice)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("got %q", got)
	}
}

func TestEmailDomain(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"alice@example.com", "example.com"},
		{"Bob@Corp.Example.COM", "corp.example.com"},
		{"no-at-sign", ""},
		{"trailing@", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := EmailDomain(tt.input); got != tt.expected {
			t.Errorf("EmailDomain(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name         string
		forwardedFor string
		remoteAddr   string
		expected     string
	}{
		{"forwarded single", "203.0.113.5", "10.0.0.1:1234", "203.0.113.5"},
		{"forwarded list takes first", "203.0.113.5, 70.41.3.18", "10.0.0.1:1234", "203.0.113.5"},
		{"no forwarded strips port", "", "192.0.2.9:5678", "192.0.2.9"},
		{"no port passes through", "", "192.0.2.9", "192.0.2.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClientIP(tt.forwardedFor, tt.remoteAddr); got != tt.expected {
				t.Errorf("ClientIP(%q, %q) = %q, want %q", tt.forwardedFor, tt.remoteAddr, got, tt.expected)
			}
		})
	}
}
