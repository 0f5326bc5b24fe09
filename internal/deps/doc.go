// Package deps verifies the external binaries the pipeline shells out to.
package deps
