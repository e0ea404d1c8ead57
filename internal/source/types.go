package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	// FileTranscoded means Content was converted from a non-UTF-8 encoding.
	FileTranscoded
)

// File captures metadata and content for a single source file.
// Content holds the raw bytes as read; Text is the decoded character stream
// every lexer works on. Offsets everywhere are indices into Text.
type File struct {
	ID       FileID
	Path     string
	Encoding string
	Content  []byte
	Text     []rune
	LineIdx  []uint32 // offsets of '\n' in Text
	Hash     [32]byte
	Flags    FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 0-based, in characters
}
