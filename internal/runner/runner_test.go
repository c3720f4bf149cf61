package runner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/redeyescan/redeye/internal/errors"
	"github.com/redeyescan/redeye/internal/session"
)

func TestIsRealScan(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want bool
	}{
		{"script scan", []string{"nmap", "-sC", "10.0.0.5"}, true},
		{"ping scan", []string{"nmap", "-sn", "10.0.0.5"}, false},
		{"list scan", []string{"nmap", "-sL", "10.0.0.0/24"}, false},
		{"sudo syn scan", []string{"sudo", "nmap", "-sS", "-T4", "10.0.0.5"}, false},
		{"sudo ping sweep", []string{"sudo", "nmap", "-sn", "-PE", "10.0.0.5"}, false},
		{"ndiff invocation", []string{"ndiff", "a.xml", "b.xml"}, false},
		{"xsltproc invocation", []string{"xsltproc", "-o", "r.html", "r.xml"}, false},
		{"bare sudo", []string{"sudo"}, false},
		{"empty argv", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRealScan(tt.argv))
		})
	}
}

func TestOutputArgs(t *testing.T) {
	got := OutputArgs(filepath.Join("dir", "scan_2026-08-30_10-00-00"))
	assert.Equal(t, []string{
		"-oN", filepath.Join("dir", "scan_2026-08-30_10-00-00.nmap"),
		"-oX", filepath.Join("dir", "scan_2026-08-30_10-00-00.xml"),
	}, got)
}

// fakeStart records launched argv and plays back scripted output.
type fakeStart struct {
	argv    []string
	output  string
	waitErr error
	startEr error
}

func (f *fakeStart) start(_ context.Context, argv []string) (io.ReadCloser, func() error, error) {
	f.argv = argv
	if f.startEr != nil {
		return nil, nil, f.startEr
	}
	return io.NopCloser(strings.NewReader(f.output)), func() error { return f.waitErr }, nil
}

func newTestRunner(fake *fakeStart) (*Runner, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	r := New()
	r.Out = buf
	r.Start = fake.start
	r.Now = func() time.Time {
		return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	}
	return r, buf
}

func TestExecuteAppendsSessionOutputFiles(t *testing.T) {
	store := session.NewStore(t.TempDir())
	sess, err := store.Create("acme")
	require.NoError(t, err)

	fake := &fakeStart{output: "Starting Nmap\nHost is up\n"}
	r, buf := newTestRunner(fake)

	r.Execute(context.Background(), []string{"nmap", "-sC", "10.0.0.5"}, sess)

	base := filepath.Join(sess.Dir, "scan_2026-08-30_10-00-00")
	assert.Equal(t, []string{
		"nmap", "-sC", "10.0.0.5",
		"-oN", base + ".nmap",
		"-oX", base + ".xml",
	}, fake.argv)
	assert.Contains(t, buf.String(), "Host is up")
	assert.Contains(t, buf.String(), "Results saved in")
}

func TestExecuteDiscoveryScanProducesNoArtifacts(t *testing.T) {
	store := session.NewStore(t.TempDir())
	sess, err := store.Create("acme")
	require.NoError(t, err)

	fake := &fakeStart{output: "Nmap done\n"}
	r, buf := newTestRunner(fake)

	r.Execute(context.Background(), []string{"nmap", "-sn", "10.0.0.5"}, sess)

	assert.Equal(t, []string{"nmap", "-sn", "10.0.0.5"}, fake.argv,
		"discovery scans must not gain output-file arguments")
	assert.NotContains(t, buf.String(), "Results saved in")
}

func TestExecuteSudoScanRunsUnmodified(t *testing.T) {
	store := session.NewStore(t.TempDir())
	sess, err := store.Create("acme")
	require.NoError(t, err)

	fake := &fakeStart{output: "Nmap done\n"}
	r, buf := newTestRunner(fake)

	r.Execute(context.Background(), []string{"sudo", "nmap", "-sS", "10.0.0.5"}, sess)

	assert.Equal(t, []string{"sudo", "nmap", "-sS", "10.0.0.5"}, fake.argv,
		"privileged scans must launch exactly as built")
	assert.NotContains(t, buf.String(), "Results saved in")
}

func TestExecuteWithoutSession(t *testing.T) {
	fake := &fakeStart{output: "done\n"}
	r, _ := newTestRunner(fake)

	r.Execute(context.Background(), []string{"nmap", "-sC", "10.0.0.5"}, nil)

	assert.Equal(t, []string{"nmap", "-sC", "10.0.0.5"}, fake.argv)
}

func TestExecuteDoesNotMutateCallerArgv(t *testing.T) {
	store := session.NewStore(t.TempDir())
	sess, err := store.Create("acme")
	require.NoError(t, err)

	argv := []string{"nmap", "-sC", "10.0.0.5"}
	fake := &fakeStart{}
	r, _ := newTestRunner(fake)

	r.Execute(context.Background(), argv, sess)

	assert.Equal(t, []string{"nmap", "-sC", "10.0.0.5"}, argv)
}

func TestExecuteLaunchFailureIsReportedNotPropagated(t *testing.T) {
	fake := &fakeStart{startEr: fmt.Errorf("exec: \"nmap\": executable file not found in $PATH")}
	r, buf := newTestRunner(fake)

	// Must not panic and must print a diagnostic.
	r.Execute(context.Background(), []string{"nmap", "-sC", "10.0.0.5"}, nil)

	assert.Contains(t, buf.String(), "An error occurred")
	assert.NotContains(t, buf.String(), "Command finished.")
}

func TestStreamExitError(t *testing.T) {
	fake := &fakeStart{output: "partial\n", waitErr: fmt.Errorf("exit status 1")}
	r, _ := newTestRunner(fake)

	var lines []string
	err := r.Stream(context.Background(), []string{"nmap", "-A", "host"}, func(line string) {
		lines = append(lines, line)
	})

	require.Error(t, err)
	assert.True(t, rerrors.IsCode(err, rerrors.CodeExitNonZero))
	assert.Equal(t, []string{"partial"}, lines, "output before a failed exit is still streamed")
}

func TestStreamLaunchErrorCode(t *testing.T) {
	fake := &fakeStart{startEr: fmt.Errorf("no such file")}
	r, _ := newTestRunner(fake)

	err := r.Stream(context.Background(), []string{"missing"}, func(string) {})

	require.Error(t, err)
	assert.True(t, rerrors.IsCode(err, rerrors.CodeLaunchFailed))
}

// TestCopyLinesIsIncremental proves lines reach the sink as they are
// written, not after the stream closes: each write is observed before the
// next one happens.
func TestCopyLinesIsIncremental(t *testing.T) {
	pr, pw := io.Pipe()
	received := make(chan string)

	go func() { _ = CopyLines(pr, func(line string) { received <- line }) }()

	for i := 0; i < 3; i++ {
		want := fmt.Sprintf("line %d", i)
		_, err := pw.Write([]byte(want + "\n"))
		require.NoError(t, err)

		select {
		case got := <-received:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("line %d was not streamed before the stream closed", i)
		}
	}
	pw.Close()
}

func TestCopyLinesLongLines(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	var lines []string

	err := CopyLines(strings.NewReader(long+"\n"), func(line string) {
		lines = append(lines, line)
	})

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 200*1024)
}

func TestCopyLinesReportsOversizedLine(t *testing.T) {
	tooLong := strings.Repeat("x", 2*1024*1024)

	err := CopyLines(strings.NewReader(tooLong), func(string) {})

	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

// brokenReader yields some output and then fails mid-stream.
type brokenReader struct {
	data io.Reader
	err  error
}

func (b *brokenReader) Read(p []byte) (int, error) {
	n, err := b.data.Read(p)
	if err == io.EOF {
		return n, b.err
	}
	return n, err
}

func TestStreamReportsTruncatedOutput(t *testing.T) {
	r, _ := newTestRunner(&fakeStart{})
	r.Start = func(_ context.Context, _ []string) (io.ReadCloser, func() error, error) {
		reader := &brokenReader{data: strings.NewReader("first line\n"), err: fmt.Errorf("read /dev/fd: input/output error")}
		return io.NopCloser(reader), func() error { return nil }, nil
	}

	var lines []string
	err := r.Stream(context.Background(), []string{"nmap", "-A", "host"}, func(line string) {
		lines = append(lines, line)
	})

	require.Error(t, err)
	assert.True(t, rerrors.IsCode(err, rerrors.CodeLaunchFailed))
	assert.Equal(t, []string{"first line"}, lines, "output before the read failure is still streamed")
}
