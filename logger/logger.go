package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/lunixbochs/vtclean"
	"github.com/sirupsen/logrus"
)

var fileBasename = filepath.Join("storycheck", "storycheck.log")

// Logger wraps a logrus logger which can also
// be persisted to a file under the XDG state directory
type Logger struct {
	*logrus.Logger
	fileHandle *os.File
	mutex      sync.Mutex
}

// Build returns a new logger writing to output,
// at debug level if verbose, warning otherwise
func Build(output io.Writer, verbose bool) *Logger {
	log := logrus.New()
	log.SetOutput(output)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return &Logger{Logger: log}
}

// Persist mirrors every entry to the log file, returning its path
func (log *Logger) Persist() (string, error) {
	path, err := xdg.StateFile(fileBasename)
	if err != nil {
		return "", err
	}

	fileHandle, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return "", err
	}

	log.mutex.Lock()
	log.fileHandle = fileHandle
	log.mutex.Unlock()
	log.AddHook(&fileHook{log: log, formatter: &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}})
	return path, nil
}

// Destroy closes the file descriptor corresponding to the log
func (log *Logger) Destroy() error {
	log.mutex.Lock()
	defer log.mutex.Unlock()

	if log.fileHandle == nil {
		return nil
	}
	err := log.fileHandle.Close()
	log.fileHandle = nil
	return err
}

type fileHook struct {
	log       *Logger
	formatter logrus.Formatter
}

func (hook *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook *fileHook) Fire(entry *logrus.Entry) error {
	line, err := hook.formatter.Format(entry)
	if err != nil {
		return err
	}

	hook.log.mutex.Lock()
	defer hook.log.mutex.Unlock()
	if hook.log.fileHandle == nil {
		return nil
	}

	_, err = hook.log.fileHandle.WriteString(
		vtclean.Clean(strings.ReplaceAll(strings.TrimRight(string(line), "\n"), "\n", " "), false) + "\n")
	return err
}
