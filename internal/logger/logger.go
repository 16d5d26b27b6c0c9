package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/srs-sudeep/vyuwer/internal/config"
)

// Logger provides leveled logging (info/warning/error) to files and stdout/stderr.
type Logger struct {
	infoLog    *log.Logger
	warningLog *log.Logger
	errorLog   *log.Logger
	logDir     string
	files      []*os.File
	mu         sync.Mutex
}

// NewLogger creates a Logger writing into config.LogDirectory.
func NewLogger(config *config.Config) (*Logger, error) {
	return New(config.LogDirectory, os.Stdout, os.Stderr)
}

// New creates a Logger that mirrors entries to stdout/stderr and, when logDir
// is not empty, to per-level files inside logDir.
func New(logDir string, stdout, stderr io.Writer) (*Logger, error) {
	logger := &Logger{logDir: logDir}

	infoWriter, warningWriter, errorWriter := stdout, stdout, stderr
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		infoFile, err := logger.openLogFile("info.log")
		if err != nil {
			return nil, err
		}
		warningFile, err := logger.openLogFile("warning.log")
		if err != nil {
			logger.Close()
			return nil, err
		}
		errorFile, err := logger.openLogFile("error.log")
		if err != nil {
			logger.Close()
			return nil, err
		}

		infoWriter = io.MultiWriter(stdout, infoFile)
		warningWriter = io.MultiWriter(stdout, warningFile)
		errorWriter = io.MultiWriter(stderr, errorFile)
	}

	logger.infoLog = log.New(infoWriter, "INFO    ", log.Ldate|log.Ltime)
	logger.warningLog = log.New(warningWriter, "WARNING ", log.Ldate|log.Ltime)
	logger.errorLog = log.New(errorWriter, "ERROR   ", log.Ldate|log.Ltime)
	return logger, nil
}

// openLogFile opens or creates a log file for appending.
func (l *Logger) openLogFile(name string) (*os.File, error) {
	file, err := os.OpenFile(filepath.Join(l.logDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", name, err)
	}
	l.files = append(l.files, file)
	return file, nil
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoLog.Printf(format, v...)
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warningLog.Printf(format, v...)
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLog.Printf(format, v...)
}

// CleanLogs truncates the specified log file.
func (l *Logger) CleanLogs(fileName string) error {
	if l.logDir == "" {
		return nil
	}

	filePath := filepath.Join(l.logDir, fileName)
	if err := os.Truncate(filePath, 0); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", fileName, err)
	}

	l.Info("File %s has been cleared.", fileName)
	return nil
}

// Close closes the log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.files = nil
	return firstErr
}
