package common

import (
	"os"
)

// FileExist reports whether the named file exists.
func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
