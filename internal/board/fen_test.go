package board

import "testing"

func TestParseFENRoundTrip(t *testing.T) {
	cases := []string{
		StartFEN,
		"7/7/7/3r1BG2/7/7/RG6 r",
		"7/7/7/7/7/7/7 b",
	}
	for _, fen := range cases {
		s, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := s.ToFEN(); got != fen {
			t.Errorf("round trip mismatch: ParseFEN(%q).ToFEN() = %q", fen, got)
		}
	}
}

func TestParseFENComputesMatchingZobrist(t *testing.T) {
	s, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if s.Zobrist != s.ComputeHash() {
		t.Errorf("Zobrist %x does not match ComputeHash() %x", s.Zobrist, s.ComputeHash())
	}
}

func TestParseFENRejectsMalformedInput(t *testing.T) {
	bad := []string{
		"",
		"7/7/7/7/7/7 r",       // missing a rank
		"8/7/7/7/7/7/7 r",     // rank too long
		"7/7/7/7/7/7/7 x",     // invalid side to move
		"7/7/7/7/7/7/6 r",     // rank too short
		"7/7/7/r0/7/7/7 r",    // invalid tower height
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) = nil error, want an error", fen)
		}
	}
}

func TestStartFENMatchesNewGameState(t *testing.T) {
	parsed, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN(StartFEN): %v", err)
	}
	fresh := NewGameState()
	if parsed.ToFEN() != fresh.ToFEN() {
		t.Errorf("StartFEN parses to a different position than NewGameState:\n%s\nvs\n%s",
			parsed.ToFEN(), fresh.ToFEN())
	}
}
