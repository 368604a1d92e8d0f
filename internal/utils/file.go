package utils

import "os"

// PathExists indicates whether the given path exists (file or directory).
func PathExists(filepath string) bool {
	_, err := os.Stat(filepath)
	return err == nil
}
