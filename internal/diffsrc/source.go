package diffsrc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/docent/internal/core/walkthrough"
)

// ErrNoInput is returned when neither a file nor piped stdin is available.
var ErrNoInput = errors.New("no diff input: pass a diff file or pipe a diff on stdin")

// Input is raw diff text and a name describing where it came from.
type Input struct {
	Name string
	Text string
}

// Read loads diff text from path, or from stdin when path is empty or "-"
// and stdin is not a terminal.
func Read(path string, stdin io.Reader, stdinIsTerminal bool) (Input, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Input{}, fmt.Errorf("read diff file: %w", err)
		}
		return Input{Name: path, Text: string(data)}, nil
	}

	if stdin == nil || stdinIsTerminal {
		return Input{}, ErrNoInput
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return Input{}, fmt.Errorf("read stdin: %w", err)
	}
	return Input{Name: "stdin", Text: string(data)}, nil
}

// Load reads, parses and filters a diff.
func Load(path string, stdin io.Reader, stdinIsTerminal bool, filter Filter) (Input, []walkthrough.Hunk, error) {
	in, err := Read(path, stdin, stdinIsTerminal)
	if err != nil {
		return Input{}, nil, err
	}

	hunks, err := Parse(in.Text)
	if err != nil {
		return in, nil, fmt.Errorf("%s: %w", in.Name, err)
	}

	hunks, err = filter.Apply(hunks)
	if err != nil {
		return in, nil, err
	}
	return in, hunks, nil
}
