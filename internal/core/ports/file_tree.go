package ports

import "iter"

// FileTree defines the filesystem operations the file materializer needs.
//
//go:generate mockgen -source=file_tree.go -destination=mocks/mock_file_tree.go -package=mocks
type FileTree interface {
	// WalkFiles yields every file below root in lexical order, as slash
	// separated paths relative to root.
	WalkFiles(root string) iter.Seq2[string, error]

	// Exists reports whether path exists.
	Exists(path string) bool

	// IsDir reports whether path is a directory.
	IsDir(path string) bool

	// SameContent reports whether two files have identical contents.
	SameContent(a, b string) (bool, error)

	// Copy copies src to dst, creating parent directories.
	Copy(src, dst string) error
}
