package schedule

import (
	"errors"
	"testing"
)

func TestParseClock_Valid(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
	}{
		{"00:00", 0, 0},
		{"08:30", 8, 30},
		{"22:00", 22, 0},
		{"23:59", 23, 59},
		{" 06:15 ", 6, 15},
	}
	for _, tc := range cases {
		c, err := ParseClock(tc.in)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", tc.in, err)
		}
		if c.Hour != tc.hour || c.Minute != tc.minute {
			t.Fatalf("ParseClock(%q) = %d:%d, want %d:%d", tc.in, c.Hour, c.Minute, tc.hour, tc.minute)
		}
	}
}

func TestParseClock_Invalid(t *testing.T) {
	cases := []string{
		"24:00",
		"00:60",
		"25:61",
		"7:30",
		"07:5",
		"0730",
		"07-30",
		"seven",
		"",
		"07:30:00",
	}
	for _, in := range cases {
		if _, err := ParseClock(in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ParseClock(%q): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestClockString(t *testing.T) {
	c := Clock{Hour: 8, Minute: 5}
	if got := c.String(); got != "08:05" {
		t.Fatalf("String() = %q, want 08:05", got)
	}
}

func TestParseAction(t *testing.T) {
	for _, in := range []string{"install", "Install", "REINSTALL", " uninstall "} {
		if _, err := ParseAction(in); err != nil {
			t.Fatalf("ParseAction(%q): %v", in, err)
		}
	}
	if _, err := ParseAction("purge"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("Restart"); err != nil || k != KindRestart {
		t.Fatalf("ParseKind(Restart) = %v, %v", k, err)
	}
	if _, err := ParseKind("hibernate"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// scriptedPrompter returns canned answers in order.
type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompter) Ask(q string) (string, error) {
	p.asked = append(p.asked, q)
	if len(p.answers) == 0 {
		return "", errors.New("no more answers")
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func TestBuild_AllSupplied(t *testing.T) {
	req, err := Build(Raw{Action: "Install", Kind: "SHUTDOWN", At: "22:00"}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if req.Action != ActionInstall || req.Kind != KindShutdown || req.At.String() != "22:00" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestBuild_PromptsForMissing(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"reinstall", "restart", "06:15"}}
	req, err := Build(Raw{}, p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if req.Action != ActionReinstall || req.Kind != KindRestart || req.At.String() != "06:15" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if len(p.asked) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(p.asked))
	}
}

func TestBuild_UninstallIgnoresSchedule(t *testing.T) {
	req, err := Build(Raw{Action: "uninstall", Kind: "restart", At: "99:99"}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if req.Action != ActionUninstall {
		t.Fatalf("unexpected action: %v", req.Action)
	}
	if req.Kind != "" || req.At != (Clock{}) {
		t.Fatalf("schedule fields should be zeroed: %+v", req)
	}
}

func TestBuild_UninstallSkipsPrompts(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"uninstall"}}
	req, err := Build(Raw{}, p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if req.Action != ActionUninstall {
		t.Fatalf("unexpected action: %v", req.Action)
	}
	if len(p.asked) != 1 {
		t.Fatalf("expected only the action prompt, got %d prompts", len(p.asked))
	}
}

func TestBuild_MissingWithoutPrompter(t *testing.T) {
	if _, err := Build(Raw{Action: "install", Kind: "shutdown"}, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBuild_RejectsBadTime(t *testing.T) {
	if _, err := Build(Raw{Action: "install", Kind: "shutdown", At: "24:00"}, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
