package event

import "testing"

func TestParseMethod(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want Method
		ok   bool
	}{
		{raw: "TKO_KO", want: MethodTKOKO, ok: true},
		{raw: "TKO/KO", want: MethodTKOKO, ok: true},
		{raw: "Submission", want: MethodSubmission, ok: true},
		{raw: "Decision", want: MethodDecision, ok: true},
		{raw: "Other", want: MethodOther, ok: true},
		{raw: "decision", ok: false},
		{raw: "KO", ok: false},
		{raw: "", ok: false},
		{raw: " Decision", ok: false},
	}
	for _, tc := range cases {
		got, ok := ParseMethod(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseMethod(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMethodLabel(t *testing.T) {
	t.Parallel()

	if got := MethodTKOKO.Label(); got != "TKO/KO" {
		t.Fatalf("unexpected TKO label: %s", got)
	}
	if got := MethodDecision.Label(); got != "Decision" {
		t.Fatalf("unexpected decision label: %s", got)
	}
}

func TestFightState(t *testing.T) {
	t.Parallel()

	f := Fight{ID: "1", FighterA: "King Green", FighterB: "Mauricio Ruffy"}
	if f.IsCompleted() {
		t.Fatalf("fight without result must not be completed")
	}
	if !f.HasFighter("Mauricio Ruffy") || f.HasFighter("mauricio ruffy") || f.HasFighter("") {
		t.Fatalf("unexpected HasFighter result")
	}

	winner := "King Green"
	f.Winner = &winner
	if f.IsCompleted() {
		t.Fatalf("fight with winner but no method must not be completed")
	}
	method := MethodDecision
	f.Method = &method
	if !f.IsCompleted() {
		t.Fatalf("expected completed fight")
	}
}
