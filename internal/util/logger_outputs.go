package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// ConsoleOutput writes logs to a stream such as stderr
type ConsoleOutput struct {
	writer io.Writer
	format LogFormat
	mu     sync.Mutex
}

func NewConsoleOutput(writer io.Writer, format LogFormat) Output {
	return &ConsoleOutput{
		writer: writer,
		format: format,
	}
}

func (c *ConsoleOutput) Write(entry LogEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeEntry(c.writer, c.format, entry)
}

func (c *ConsoleOutput) Close() error {
	return nil
}

// FileOutput appends logs to a file
type FileOutput struct {
	file   *os.File
	format LogFormat
	mu     sync.Mutex
}

// NewFileOutput opens path for appending, creating parent directories.
func NewFileOutput(path string, format LogFormat) (Output, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &FileOutput{
		file:   file,
		format: format,
	}, nil
}

func (f *FileOutput) Write(entry LogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return writeEntry(f.file, f.format, entry)
}

func (f *FileOutput) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Close()
}

func writeEntry(w io.Writer, format LogFormat, entry LogEntry) error {
	var line string
	if format == FormatJSON {
		data, err := sonic.Marshal(entry)
		if err != nil {
			return err
		}
		line = string(data)
	} else {
		line = formatText(entry)
	}

	_, err := fmt.Fprintln(w, line)
	return err
}
