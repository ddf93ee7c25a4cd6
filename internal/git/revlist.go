package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/gittree-go/internal/walk"
)

// RevListSource streams `git rev-list --parents --reverse --topo-order`
// output as edge records. The reverse topological order is what lets the
// boundary engine classify each commit in a single pass: every parent line
// has already been emitted (or is a base) by the time its child arrives.
//
// The stream is read lazily, one line per Next call; backpressure on the
// child process comes from simply not reading ahead.
type RevListSource struct {
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	scanner *bufio.Scanner
	stderr  bytes.Buffer
	waited  bool
	waitErr error
}

// OpenRevList spawns the rev-list process covering the commits reachable
// from tips but not from bases. With no tips the source is empty and no
// process is spawned.
func OpenRevList(ctx context.Context, repoPath string, tips, bases []plumbing.Hash) (*RevListSource, error) {
	src := &RevListSource{}
	if len(tips) == 0 {
		src.waited = true
		return src, nil
	}

	args := []string{"-C", repoPath, "rev-list", "--parents", "--reverse", "--topo-order"}
	for _, t := range tips {
		args = append(args, t.String())
	}
	if len(bases) > 0 {
		args = append(args, "--not")
		for _, b := range bases {
			args = append(args, b.String())
		}
	}

	src.cmd = exec.CommandContext(ctx, "git", args...)
	src.cmd.Stderr = &src.stderr

	stdout, err := src.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("rev-list stdout pipe: %w", err)
	}
	src.stdout = stdout
	src.scanner = bufio.NewScanner(stdout)

	if err := src.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start git rev-list: %w", err)
	}
	return src, nil
}

// Next returns the next edge record, or io.EOF once the process has
// exited cleanly and its output is exhausted. An abnormal exit surfaces
// here, before io.EOF, so a half-delivered stream can never be mistaken
// for a complete one.
func (s *RevListSource) Next() (walk.EdgeRecord, error) {
	if s.waited {
		if s.waitErr != nil {
			return walk.EdgeRecord{}, s.waitErr
		}
		return walk.EdgeRecord{}, io.EOF
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			s.reap()
			return walk.EdgeRecord{}, fmt.Errorf("read rev-list output: %w", err)
		}
		if err := s.reap(); err != nil {
			return walk.EdgeRecord{}, err
		}
		return walk.EdgeRecord{}, io.EOF
	}
	return parseEdgeLine(s.scanner.Text())
}

// Close releases the stream. Closing before exhaustion kills the pipe and
// discards the child's exit status; after a clean drain it is a no-op.
func (s *RevListSource) Close() error {
	if s.waited || s.cmd == nil {
		return nil
	}
	s.stdout.Close()
	s.waited = true
	s.cmd.Wait()
	return nil
}

// reap waits for the process exactly once, capturing an abnormal exit
// together with whatever it wrote to stderr.
func (s *RevListSource) reap() error {
	if s.waited {
		return s.waitErr
	}
	s.waited = true
	if err := s.cmd.Wait(); err != nil {
		s.waitErr = fmt.Errorf("git rev-list failed: %w: %s", err, strings.TrimSpace(s.stderr.String()))
	}
	return s.waitErr
}

// parseEdgeLine parses one rev-list line: a commit id followed by zero or
// more parent ids, space separated.
func parseEdgeLine(line string) (walk.EdgeRecord, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return walk.EdgeRecord{}, fmt.Errorf("malformed rev-list record: %w", walk.ErrMalformedRecord)
	}

	var rec walk.EdgeRecord
	for i, f := range fields {
		if !plumbing.IsHash(f) {
			return walk.EdgeRecord{}, fmt.Errorf("malformed rev-list record: not a hash: %q", f)
		}
		if i == 0 {
			rec.ID = plumbing.NewHash(f)
		} else {
			rec.Parents = append(rec.Parents, plumbing.NewHash(f))
		}
	}
	return rec, nil
}
