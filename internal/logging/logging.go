package logging

import (
	"io"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/loggo/loggocolor"
	"gopkg.in/natefinch/lumberjack.v2"

	"domain-migrator/internal/config"
)

// FileWriterName is the loggo writer name of the log file.
const FileWriterName = "file"

// Rotation limits of the log file.
const (
	maxFileSizeMB = 10
	maxBackups    = 3
)

// Configure routes log output to stderr (colored unless disabled) and,
// when settings.LogFile is set, to a rotated log file. The returned closer
// releases the log file.
func Configure(settings config.Settings, stderr io.Writer) (io.Closer, error) {
	spec, err := levelSpec(settings.LogLevel)
	if err != nil {
		return nil, errors.Trace(err)
	}

	// Drops writers and levels from an earlier call.
	loggo.ResetLogging()

	var console loggo.Writer
	if settings.NoColor {
		console = loggo.NewSimpleWriter(stderr, loggo.DefaultFormatter)
	} else {
		console = loggocolor.NewWriter(stderr)
	}

	_, err = loggo.ReplaceDefaultWriter(console)
	if err != nil {
		return nil, errors.Annotate(err, "replacing default log writer")
	}

	err = loggo.ConfigureLoggers(spec)
	if err != nil {
		return nil, errors.Annotatef(err, "invalid log level %q", settings.LogLevel)
	}

	if settings.LogFile == "" {
		return nopCloser{}, nil
	}

	file := &lumberjack.Logger{
		Filename:   settings.LogFile,
		MaxSize:    maxFileSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}

	err = loggo.RegisterWriter(FileWriterName, loggo.NewSimpleWriter(file, loggo.DefaultFormatter))
	if err != nil {
		return nil, errors.Annotatef(err, "logging to %s", settings.LogFile)
	}

	return file, nil
}

// levelSpec accepts a full loggo specification or a bare level name,
// which applies to the root logger.
func levelSpec(level string) (string, error) {
	if strings.Contains(level, "=") {
		return level, nil
	}

	l, ok := loggo.ParseLevel(level)
	if !ok {
		return "", errors.NotValidf("log level %q", level)
	}

	return "<root>=" + l.String(), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
