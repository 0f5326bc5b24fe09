package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"clipsight/internal/config"
	"clipsight/internal/deps"
)

// minScratchBytes is the free-space floor for the scratch filesystem. Frame
// sequences for long videos run to a few GiB before cleanup.
const minScratchBytes = 2 << 30

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check an analysis run depends on.
func RunAll(cfg *config.Config, sourcePath string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckSourceFile(sourcePath),
		CheckDirectoryAccess("Scratch directory", cfg.Paths.ScratchDir),
		CheckDirectoryAccess("Artifact directory", cfg.Paths.ArtifactDir),
		CheckFreeSpace("Scratch free space", cfg.Paths.ScratchDir),
	}

	statuses := deps.CheckBinaries(deps.Required(cfg.FFmpegBinary(), cfg.FFprobeBinary(), cfg.Analysis.IncludeAudio))
	for _, status := range statuses {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Command
		}
		if status.Optional && !status.Available {
			result.Passed = true
			result.Detail = status.Detail + " (optional; audio track will be empty)"
		}
		results = append(results, result)
	}

	return results
}

// Failed returns the first failing result, if any.
func Failed(results []Result) (Result, bool) {
	for _, result := range results {
		if !result.Passed {
			return result, true
		}
	}
	return Result{}, false
}

// CheckSourceFile verifies the input video exists and is a regular file.
func CheckSourceFile(path string) Result {
	const name = "Source video"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if info.Size() == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: empty file)", path)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the filesystem holding path has extraction headroom.
func CheckFreeSpace(name, path string) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minScratchBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %.1f GiB free, need %.1f GiB)", path, gib(free), gib(minScratchBytes))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%.1f GiB free", gib(free))}
}

func gib(bytes uint64) float64 {
	return float64(bytes) / (1 << 30)
}
