package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func init() {
	InitLogger()
}

func InitLogger() {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	// InfoLogger ke stdout, ErrorLogger ke stderr
	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	InfoLogger.SetLevel(logrus.InfoLevel)
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}

// SetLevel parses a logrus level name and applies it to InfoLogger.
// Unknown names leave the level untouched.
func SetLevel(name string) {
	if name == "" {
		return
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		ErrorLogger.Printf("Unknown log level %q: %v", name, err)
		return
	}
	InfoLogger.SetLevel(level)
}
