package logger

import (
	"io"
	"log"
	"os"
)

// Leveled loggers shared by the service. Levels below the configured one
// write to io.Discard; errors always reach stderr as well as the log file.
var (
	Info  *log.Logger
	Warn  *log.Logger
	Debug *log.Logger
	Error *log.Logger
	// Always writes to the log file regardless of the configured level.
	Always *log.Logger

	currentLevel string
)

var levels = map[string]int{
	"error": 0,
	"warn":  1,
	"info":  2,
	"debug": 3,
}

func Init() error {
	return InitWithConfig("info", "lattice.log")
}

func InitWithConfig(level, logFilePath string) error {
	currentLevel = level

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	Info = log.New(levelWriter("info", logFile), "INFO: ", log.Ldate|log.Ltime)
	Warn = log.New(levelWriter("warn", logFile), "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(levelWriter("debug", logFile), "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(io.MultiWriter(os.Stderr, logFile), "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Always = log.New(logFile, "", log.Ldate|log.Ltime)

	return nil
}

func levelWriter(level string, active io.Writer) io.Writer {
	if shouldLog(level) {
		return active
	}
	return io.Discard
}

func shouldLog(level string) bool {
	current, ok := levels[currentLevel]
	if !ok {
		current = levels["info"]
	}
	required, ok := levels[level]
	if !ok {
		return false
	}
	return current >= required
}
