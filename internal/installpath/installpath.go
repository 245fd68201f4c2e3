package installpath

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/morozRed/lwdecomp/internal/fileutil"
	"github.com/morozRed/lwdecomp/internal/prompt"
)

// CacheFileName is stored beside the executable.
const CacheFileName = ".lwInstallPath"

const enterPathQuestion = "Please enter the path to the topmost Logicworld directory and then press ENTER. " +
	"(The folder that contains the Logic_World.exe file along with subfolders such as Logic_World_Data):"

// Resolver validates install path candidates against the subfolders the run
// needs.
type Resolver struct {
	// CacheFile holds the last accepted install path.
	CacheFile string
	// Required lists subfolders, relative to the install root, checked in order.
	Required []string
	// Candidate, when set, is tried before the cached value and is treated
	// as if the user had typed it.
	Candidate string

	Prompter *prompt.Prompter
	Out      io.Writer
}

// DefaultCacheFile returns the cache file path beside the running executable.
func DefaultCacheFile() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), CacheFileName), nil
}

const (
	notSetMessage          = "Looks like the Logicworld install path hasnt been set yet."
	cachedMissingMessage   = "Looks like the cached path no longer exists."
	candidateMissingFormat = "The install path %s does not exist."
)

// Check returns a user-facing problem description for path, or "" when the
// path is usable.
func Check(path string, required []string) string {
	if path == "" {
		return notSetMessage
	}
	if !fileutil.DirExists(path) {
		return cachedMissingMessage
	}
	for _, sub := range required {
		if !fileutil.DirExists(filepath.Join(path, sub)) {
			return fmt.Sprintf("The %s folder cannot be found inside the given install dir", filepath.ToSlash(sub))
		}
	}
	return ""
}

// ReadCache returns the cached install path, or "" when there is none.
func ReadCache(cacheFile string) (string, error) {
	data, err := os.ReadFile(cacheFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", cacheFile, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Resolve returns a validated install path. Invalid values are reported and
// the user is asked again; the only error is running out of input.
func (r *Resolver) Resolve() (string, error) {
	fmt.Fprintln(r.Out, "Checking Logicworld install path...")

	cached, err := ReadCache(r.CacheFile)
	if err != nil {
		return "", err
	}

	path := cached
	supplied := false
	fromFlag := false
	if r.Candidate != "" {
		path = strings.TrimSpace(r.Candidate)
		supplied = true
		fromFlag = true
	}

	for {
		problem := Check(path, r.Required)
		if problem == "" {
			break
		}
		if fromFlag && problem == cachedMissingMessage {
			problem = fmt.Sprintf(candidateMissingFormat, path)
		}
		fmt.Fprintln(r.Out, problem)
		fromFlag = false

		path, err = r.Prompter.Line(enterPathQuestion)
		if err != nil {
			return "", fmt.Errorf("failed to read install path: %w", err)
		}
		supplied = true
	}

	if supplied && path != cached {
		if err := fileutil.WriteIfChanged(r.CacheFile, []byte(path)); err != nil {
			return "", fmt.Errorf("failed to cache install path: %w", err)
		}
	}

	fmt.Fprintln(r.Out, "Install path OK.")
	return path, nil
}
