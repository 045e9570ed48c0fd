package driver

import (
	"fmt"

	"canon/internal/project"
	"canon/internal/source"
	"canon/internal/version"
)

// unitKey identifies one canonicalization: the file content and every
// setting that changes the cached payload.
func unitKey(file *source.File, opts Options) project.Digest {
	settings := fmt.Sprintf("schema=%d;version=%s;home=%s;ir=%s",
		diskCacheSchemaVersion, version.Number, opts.home(), opts.EmitIR)
	return project.Combine(project.Digest(file.Hash), project.StringDigest(settings))
}
