package tracer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"

	"loov.dev/calltimeline/trace"
)

type decoded struct {
	Function string
	Records  []trace.Record
}

func dump(log *trace.Log) []decoded {
	var out []decoded
	log.Each(func(function string, records []trace.Record) {
		out = append(out, decoded{Function: function, Records: records})
	})
	return out
}

func TestParse(t *testing.T) {
	for _, test := range []struct {
		description string
		input       string
		want        []decoded
		wantSkipped int
	}{{
		description: "enter and exit",
		input: `Enter main at 0 ns
  Enter Account::deposit at 120 ns
  Exit Account::deposit at 450 ns (duration: 330 ns)
Exit main at 900 ns (duration: 900 ns)
`,
		want: []decoded{
			{"main", []trace.Record{
				{Time: 0, Kind: trace.Enter},
				{Time: 900, Kind: trace.Exit, Duration: 900},
			}},
			{"Account::deposit", []trace.Record{
				{Time: 120, Kind: trace.Enter},
				{Time: 450, Kind: trace.Exit, Duration: 330},
			}},
		},
	}, {
		description: "name stops at the first matching at",
		input:       "Enter look at me at 7 ns, retry at 9 ns",
		want: []decoded{
			{"look at me", []trace.Record{{Time: 7, Kind: trace.Enter}}},
		},
	}, {
		description: "empty name is kept",
		input:       "Enter  at 3 ns\nExit  at 4 ns (duration: 1 ns)",
		want: []decoded{
			{"", []trace.Record{
				{Time: 3, Kind: trace.Enter},
				{Time: 4, Kind: trace.Exit, Duration: 1},
			}},
		},
	}, {
		description: "malformed lines are skipped",
		input: `starting bank demo
Enter main at 10 ns
Exit main at 20 ns
Enter main at ten ns
Exit main at 30 ns (duration: 20 ns)
Enter overflow at 99999999999999999999 ns
`,
		want: []decoded{
			{"main", []trace.Record{
				{Time: 10, Kind: trace.Enter},
				{Time: 30, Kind: trace.Exit, Duration: 20},
			}},
		},
		wantSkipped: 4,
	}, {
		description: "exit without duration is not an exit",
		input:       "Exit lonely at 5 ns",
		want:        nil,
		wantSkipped: 1,
	}} {
		t.Run(test.description, func(t *testing.T) {
			log, err := Parse(strings.NewReader(test.input))
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			got := dump(log)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Parse() = diff (-want +got):\n%s", diff)
			}
			if log.Skipped != test.wantSkipped {
				t.Errorf("Skipped = %d, want %d", log.Skipped, test.wantSkipped)
			}
		})
	}
}

func TestParseLineTriesBothShapes(t *testing.T) {
	log := trace.NewLog()
	// an exit record of a function whose name contains "Enter "
	if !ParseLine(log, "Exit ReEnter x at 5 ns (duration: 2 ns)") {
		t.Fatalf("ParseLine did not match")
	}
	want := []decoded{
		{"x", []trace.Record{{Time: 5, Kind: trace.Enter}}},
		{"ReEnter x", []trace.Record{{Time: 5, Kind: trace.Exit, Duration: 2}}},
	}
	if diff := cmp.Diff(want, dump(log)); diff != "" {
		t.Errorf("ParseLine() = diff (-want +got):\n%s", diff)
	}
}

func TestMalformedLineDoesNotChangeEvents(t *testing.T) {
	clean := "Enter a at 1 ns\nEnter b at 2 ns\nExit b at 3 ns (duration: 1 ns)\nExit a at 4 ns (duration: 3 ns)\n"
	noisy := "# header\nEnter a at 1 ns\nEnter b at 2 ns\n\t garbage line \nExit b at 3 ns (duration: 1 ns)\nExit a at 4 ns (duration: 3 ns)\ntrailer"

	want, err := Parse(strings.NewReader(clean))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(strings.NewReader(noisy))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want.Flatten(), got.Flatten()); diff != "" {
		t.Errorf("events differ (-clean +noisy):\n%s", diff)
	}
	if got.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", got.Skipped)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Tracer.log")
	if err := os.WriteFile(path, []byte("Enter main at 0 ns\nExit main at 8 ns (duration: 8 ns)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	second, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if diff := cmp.Diff(dump(first), dump(second)); diff != "" {
		t.Errorf("decoding twice differs:\n%s", diff)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.log"))
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("ReadFile() error = %v, want %v", err, ErrSourceUnavailable)
	}
}

func TestOverlongLineIsSkipped(t *testing.T) {
	clean := "Enter a at 1 ns\nExit a at 2 ns (duration: 1 ns)\n"
	long := "Enter a at 1 ns\n" + strings.Repeat("x", maxLineSize+(1<<20)) + "\nExit a at 2 ns (duration: 1 ns)\n"

	want, err := Parse(strings.NewReader(clean))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Parse(strings.NewReader(long))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if diff := cmp.Diff(want.Flatten(), got.Flatten()); diff != "" {
		t.Errorf("events differ (-clean +long):\n%s", diff)
	}
	if got.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", got.Skipped)
	}
}

func TestParseCarriageReturns(t *testing.T) {
	log, err := Parse(strings.NewReader("Enter a at 1 ns\r\nExit a at 2 ns (duration: 1 ns)\r\n\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []decoded{
		{"a", []trace.Record{{Time: 1, Kind: trace.Enter}, {Time: 2, Kind: trace.Exit, Duration: 1}}},
	}
	if diff := cmp.Diff(want, dump(log)); diff != "" {
		t.Errorf("Parse() = diff (-want +got):\n%s", diff)
	}
	if log.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", log.Skipped)
	}
}

func TestParseReadFailure(t *testing.T) {
	failing := io.MultiReader(strings.NewReader("Enter a at 1 ns\n"), iotest.ErrReader(errors.New("disk gone")))
	if _, err := Parse(failing); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Parse() error = %v, want %v", err, ErrSourceUnavailable)
	}
}
