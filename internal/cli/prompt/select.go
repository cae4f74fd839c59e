// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/thoreinstein/rkm/internal/errors"
)

// Sentinel errors for keymap selection.
var (
	ErrNoKeymaps          = errors.New("no keymaps to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive keymap selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectKeymap prompts the user to choose one of several keymap files found
// in dir.
//
// Returns:
//   - ErrNoKeymaps if the list is empty
//   - The only path if just one exists (no prompt)
//   - The selected path based on user input; empty input picks the first
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectKeymap(dir string, keymaps []string) (string, error) {
	if len(keymaps) == 0 {
		return "", ErrNoKeymaps
	}

	if len(keymaps) == 1 {
		return keymaps[0], nil
	}

	fmt.Fprintf(s.writer, "Multiple keymaps found in %s:\n", dir)
	for i, p := range keymaps {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, filepath.Base(p))
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrSelectionCancelled
		}
		return "", errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return keymaps[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	if selection < 1 || selection > len(keymaps) {
		return "", errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(keymaps))
	}

	return keymaps[selection-1], nil
}
