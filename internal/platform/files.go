package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// DownloadsDirName is the conventional per-user downloads folder
const DownloadsDirName = "Downloads"

// LinuxFileManagers are tried in order when xdg-open is unavailable
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// PartialExtensions mark files yt-dlp is still writing or left behind on abort
var PartialExtensions = []string{".part", ".ytdl", ".temp"}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// DirectoryExists reports whether path exists and is a directory
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DownloadsDirName), nil
}

// IsPartialFile reports whether name is an in-progress or abandoned download
func IsPartialFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, partial := range PartialExtensions {
		if ext == partial {
			return true
		}
	}
	return false
}

// FindOutputFile returns filePath when it exists. Otherwise it looks in the same
// directory for a finished file sharing the title stem, which covers yt-dlp
// renaming intermediate format files (title.f137.mp4) after merging.
func FindOutputFile(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	dir := filepath.Dir(filePath)
	stem := titleStem(filepath.Base(filePath))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || IsPartialFile(name) {
			continue
		}
		if titleStem(name) == stem {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no file matching %q in %s", stem, dir)
	}

	sort.Strings(candidates)
	return candidates[0], nil
}

// titleStem strips the extension and a trailing yt-dlp format marker (.f137)
func titleStem(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if idx := strings.LastIndex(stem, ".f"); idx > 0 && isDigits(stem[idx+2:]) {
		stem = stem[:idx]
	}
	return stem
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	foundPath, err := FindOutputFile(filePath)
	if err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	absPath, err := filepath.Abs(foundPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openDirectoryLinux(filepath.Dir(absPath))
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// OpenDirectory opens a folder in the system file manager
func OpenDirectory(dir string) error {
	if !DirectoryExists(dir) {
		return fmt.Errorf("directory does not exist: %s", dir)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, dir).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, dir).Run()
	case OSLinux:
		return openDirectoryLinux(dir)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// File selection is not standardized on Linux, so the parent directory is opened
func openDirectoryLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}
	return fmt.Errorf("no suitable file manager found")
}
