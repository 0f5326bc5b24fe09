// Package preflight validates the environment before an analysis run starts:
// source file, scratch/artifact directory access, free disk space, and the
// external binaries the pipeline shells out to.
package preflight
