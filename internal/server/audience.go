package server

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	DefaultAudienceLabel = "Just Me"
)

// LoadAudienceLabel returns the first line of the file at path, or the
// default label when there is no such file. It is read once at startup.
func LoadAudienceLabel(path string) string {
	if path == "" {
		return DefaultAudienceLabel
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("No audience file, using default label", "path", path)
		} else {
			slog.Error("Failed to read audience file, using default label", "path", path, "error", err)
		}
		return DefaultAudienceLabel
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Failed to read audience file, using default label", "path", path, "error", err)
		return DefaultAudienceLabel
	}

	label := strings.TrimRight(line, "\r\n")
	slog.Info("Loaded audience label", "path", path)

	return label
}
