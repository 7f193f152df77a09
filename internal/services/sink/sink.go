// Package sink delivers a finished rendering to its destination: the terminal, a file or the clipboard.
package sink

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/temirov/ftree/internal/services/clipboard"
)

const (
	savedStatusFormat  = "File tree saved to %s (%s)\n"
	copiedStatusFormat = "File tree copied to clipboard (%s lines)\n"
	saveFilePermission = 0o644
)

// Sink accepts one complete rendering.
type Sink interface {
	Deliver(rendering string) error
}

// Display writes renderings to a stream, normally standard output.
type Display struct {
	writer   io.Writer
	terminal bool
}

// NewDisplay returns a Display writing to writer.
// When writer is an interactive terminal every rendering ends with a newline.
func NewDisplay(writer io.Writer) *Display {
	return &Display{writer: writer, terminal: isTerminal(writer)}
}

// Deliver writes the rendering unchanged, adding a final newline only for terminals.
func (display *Display) Deliver(rendering string) error {
	if display.terminal && !strings.HasSuffix(rendering, "\n") {
		rendering += "\n"
	}
	if _, err := io.WriteString(display.writer, rendering); err != nil {
		return fmt.Errorf("write rendering: %w", err)
	}
	return nil
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	descriptor := file.Fd()
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}

// File writes renderings to a file and reports the written size on a status stream.
type File struct {
	path   string
	status io.Writer
}

// NewFile returns a File sink for path. A nil status stream suppresses the status line.
func NewFile(path string, status io.Writer) *File {
	return &File{path: path, status: status}
}

// Deliver replaces the destination file with the rendering.
func (file *File) Deliver(rendering string) error {
	if err := os.WriteFile(file.path, []byte(rendering), saveFilePermission); err != nil {
		return fmt.Errorf("save rendering to %s: %w", file.path, err)
	}
	if file.status != nil {
		color.New(color.FgGreen).Fprintf(file.status, savedStatusFormat, file.path, humanize.Bytes(uint64(len(rendering))))
	}
	return nil
}

// Clipboard hands renderings to a clipboard Copier.
type Clipboard struct {
	copier clipboard.Copier
	status io.Writer
}

// NewClipboard returns a Clipboard sink. A nil status stream suppresses the status line.
func NewClipboard(copier clipboard.Copier, status io.Writer) *Clipboard {
	return &Clipboard{copier: copier, status: status}
}

// Deliver copies the rendering to the clipboard.
func (sink *Clipboard) Deliver(rendering string) error {
	if err := sink.copier.Copy(rendering); err != nil {
		return fmt.Errorf("copy rendering: %w", err)
	}
	if sink.status != nil {
		lineCount := strings.Count(strings.TrimSuffix(rendering, "\n"), "\n") + 1
		color.New(color.FgGreen).Fprintf(sink.status, copiedStatusFormat, humanize.Comma(int64(lineCount)))
	}
	return nil
}

var (
	_ Sink = (*Display)(nil)
	_ Sink = (*File)(nil)
	_ Sink = (*Clipboard)(nil)
)
