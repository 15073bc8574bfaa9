package cli

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// lineReader yields shell input one line at a time. ReadLine returns
// io.EOF when the user is done.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// newLineReader uses liner for line editing and arrow-key history when in
// is a terminal, and a plain scanner for pipes and tests.
func newLineReader(in io.Reader) lineReader {
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		return &terminalReader{state: state}
	}
	return &scannerReader{scanner: bufio.NewScanner(in)}
}

type terminalReader struct {
	state *liner.State
}

func (r *terminalReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	r.state.AppendHistory(line)
	return line, nil
}

func (r *terminalReader) Close() error {
	return r.state.Close()
}

type scannerReader struct {
	scanner *bufio.Scanner
}

func (r *scannerReader) ReadLine(string) (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scannerReader) Close() error { return nil }
