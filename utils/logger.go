package utils

import (
	"log"
	"os"
)

// InitLogger returns the application logger. Unexpected store failures are
// logged here with full context; callers only ever see a generic message.
func InitLogger() *log.Logger {
	return log.New(os.Stdout, "[learnhub] ", log.LstdFlags|log.Lshortfile|log.LUTC)
}
