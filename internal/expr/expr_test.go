package expr

import (
	"testing"
)

func TestEval_Arithmetic(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1 + 2", 3},
		{"2 * 3 + 4", 10},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 4", 2.5},
		{"10 % 3", 1},
		{"-5 + 2", -3},
		{"--3", 3},
		{"2 * -3", -6},
	}
	for _, c := range cases {
		got, err := Eval(c.in, nil)
		if err != nil {
			t.Errorf("Eval(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Eval(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEval_Comparisons(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1 < 2", 1},
		{"2 < 1", 0},
		{"3 == 3", 1},
		{"3 != 3", 0},
		{"2 >= 2", 1},
		{"2 <= 1", 0},
		{"1 < 2 && 3 < 4", 1},
		{"1 < 2 and 4 < 3", 0},
		{"1 > 2 || 3 < 4", 1},
		{"1 > 2 or 2 > 3", 0},
	}
	for _, c := range cases {
		got, err := Eval(c.in, nil)
		if err != nil {
			t.Errorf("Eval(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Eval(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEval_Variables(t *testing.T) {
	vars := Vars{"NF": 3, "NR": 10}
	got, err := Eval("NF > 2 && NR <= 10", vars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("expected 1, got %v", got)
	}

	if _, err := Eval("NF + missing", vars); err == nil {
		t.Error("expected error for unknown variable")
	}
}

func TestEval_Errors(t *testing.T) {
	bad := []string{
		"", "1 +", "(1 + 2", "1 2", "1 / 0", "5 % 0",
		"@", "1 ** 2", "import x",
	}
	for _, in := range bad {
		if _, err := Eval(in, nil); err == nil {
			t.Errorf("Eval(%q) should fail", in)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := map[float64]string{
		3:    "3",
		2.5:  "2.5",
		-7:   "-7",
		0:    "0",
		0.25: "0.25",
	}
	for in, want := range cases {
		if got := Format(in); got != want {
			t.Errorf("Format(%v) = %q, want %q", in, got, want)
		}
	}
}
