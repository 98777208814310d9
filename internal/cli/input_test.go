package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestReadLine(t *testing.T) {
	var out bytes.Buffer
	got, err := ReadLine(rdr("Maria Silva\n"), "Name", &out)
	if err != nil || got != "Maria Silva" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if !strings.Contains(out.String(), "Name") {
		t.Fatalf("prompt not shown: %q", out.String())
	}
}

func TestReadLineEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := ReadLine(rdr("lastline"), "Name", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestReadDefault(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		current string
		want    string
	}{
		{"blank keeps current", "\n", "Turma A", "Turma A"},
		{"answer replaces current", "Turma B\n", "Turma A", "Turma B"},
		{"blank with no current stays empty", "\n", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := ReadDefault(rdr(tt.input), "Name", tt.current, &out)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadDefaultShowsCurrent(t *testing.T) {
	var out bytes.Buffer
	_, err := ReadDefault(rdr("\n"), "Name", "Turma A", &out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Turma A") {
		t.Fatalf("current value not shown: %q", out.String())
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"s\n", true},
		{"sim\n", true},
		{"n\n", false},
		{"\n", false},
		{"whatever\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := Confirm(rdr(tt.input), "Sure?", &out)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Fatalf("input %q: got %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestReadPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := ReadPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	if err != nil || id != 42 {
		t.Fatalf("got %d, err=%v", id, err)
	}
	for _, bad := range []string{"", "abc", "0", "-3"} {
		if _, err := ParseID(bad); err == nil {
			t.Fatalf("ParseID(%q) should fail", bad)
		}
	}
}
