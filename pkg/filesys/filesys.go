// Package filesys provides a small set of filesystem utility functions used
// to set up and back up an Ignite data directory: creating it, checking
// whether it already exists, and copying its segment files elsewhere.
package filesys

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

var (
	ErrIsNotDir = errors.New("path isn't a directory")
)

// CreateDir creates a directory at the specified path with the given permissions.
//
// If the directory already exists:
//   - If 'force' is true, it proceeds without error.
//   - If 'force' is false, it returns an error.
//
// It also returns an error if the existing path is a file (not a directory).
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	// Get file information for the given path.
	stat, err := os.Stat(dirPath)
	// If 'force' is false and the path exists
	// return the error (indicating the directory already exists).
	if !force && !os.IsNotExist(err) {
		if err == nil {
			return os.ErrExist
		}
		return err
	}

	// If the path exists and it's not a directory, return an error.
	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	// Create all necessary parent directories if they don't exist, with the specified permissions.
	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	// Apply the requested permissions to the directory itself, regardless of the umask.
	return os.Chmod(dirPath, permission)
}

// CopyDir copies the entire contents of a source directory to a destination directory.
// It preserves the file modes of the source directory and files.
// It returns an error if the source is not a directory or if any other I/O operation fails.
func CopyDir(src, dest string) error {
	// Get file information for the source path.
	srcStat, err := os.Stat(src)
	if err != nil {
		return err
	}
	// If the source is not a directory, return an error.
	if !srcStat.IsDir() {
		return ErrIsNotDir
	}

	// Create the destination directory with the same permissions as the source directory.
	if err := os.MkdirAll(dest, srcStat.Mode()); err != nil {
		return err
	}

	// Walk through the source directory recursively.
	err = filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		// If an error occurred during walking, return it.
		if err != nil {
			return err
		}

		// If the current item is not a regular file (e.g., a directory, symlink), skip it.
		if !info.Mode().IsRegular() {
			return nil
		}

		// Construct the destination path for the current file.
		// `path[len(src)+1:]` gets the relative path from the source directory.
		destPath := filepath.Join(dest, path[len(src)+1:])
		// Create any necessary parent directories for the destination file with default permissions.
		if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
			return err
		}

		// Open the source file for reading.
		srcFile, err := os.Open(path)
		if err != nil {
			return err
		}
		defer srcFile.Close() // Ensure the source file is closed.

		// Create the destination file for writing, with the source file's mode.
		destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
		if err != nil {
			return err
		}
		defer destFile.Close() // Ensure the destination file is closed.

		// Copy the contents from the source file to the destination file.
		if _, err := io.Copy(destFile, srcFile); err != nil {
			return err
		}

		return nil
	})
	// If an error occurred during the walk, return it.
	if err != nil {
		return err
	}

	return nil
}

// Exists checks if a file or directory at the given `file` path exists.
// It returns true if the file/directory exists, false if it does not,
// and an error if there's any other issue checking its status.
func Exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil // Path exists.
	}
	// If the error indicates that the file does not exist, return false.
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
