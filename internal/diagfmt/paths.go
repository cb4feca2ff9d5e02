package diagfmt

import "inlinable/internal/source"

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// validSpan reports whether sp points into a known file.
func validSpan(fs *source.FileSet, sp source.Span) bool {
	if fs == nil || int(sp.File) >= fs.Len() {
		return false
	}
	return int(sp.End) <= len(fs.Get(sp.File).Content)
}
