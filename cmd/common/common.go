package common

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ReadFirstLine returns the first line of the file at path, trimmed of
// surrounding whitespace. An empty file yields an empty string.
func ReadFirstLine(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", scanner.Err()
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ResolveToken prefers an explicit token and otherwise reads the token file.
func ResolveToken(token, tokenFilePath string) (string, error) {
	if token != "" {
		return token, nil
	}
	path, err := ExpandHome(tokenFilePath)
	if err != nil {
		return "", err
	}
	return ReadFirstLine(path)
}

// CurrentFolderName returns the base name of the working directory.
func CurrentFolderName() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Base(wd), nil
}
