package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves offsets to positions.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores decoded text, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, text []rune, encoding string, flags FileFlags) FileID {
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:       id,
		Path:     normalizedPath,
		Encoding: encoding,
		Content:  content,
		Text:     text,
		LineIdx:  buildLineIndex(text),
		Hash:     sha256.Sum256(content),
		Flags:    flags,
	})
	// Всегда обновляем индекс на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load opens path, decodes it with the named encoding and calls Add.
// The handle is closed before Load returns, whatever the outcome.
func (fileSet *FileSet) Load(path, encoding string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec, err := Decode(f, encoding)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return fileSet.Add(path, dec.Raw, dec.Text, dec.Encoding, dec.Flags), nil
}

// AddVirtual adds an in-memory UTF-8 file with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name, content string) FileID {
	return fileSet.Add(name, []byte(content), []rune(content), EncodingUTF8, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Len returns the number of decoded characters.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Text))
	if err != nil {
		panic(fmt.Errorf("file text length overflow: %w", err))
	}
	return n
}

// GetLine возвращает строку с заданным номером (1-based) без '\n'.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	size := f.Len()

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = size
	}
	if start >= size {
		return ""
	}
	return string(f.Text[start:end])
}

// Offset converts a 1-based line and 0-based column back into a character
// offset. Columns past the end of the line are clamped to it.
func (f *File) Offset(pos LineCol) uint32 {
	size := f.Len()
	var start uint32
	if pos.Line > 1 {
		idx := int(pos.Line) - 2
		if idx >= len(f.LineIdx) {
			return size
		}
		start = f.LineIdx[idx] + 1
	}
	end := size
	if idx := int(pos.Line) - 1; idx >= 0 && idx < len(f.LineIdx) {
		end = f.LineIdx[idx]
	}
	return min(start+pos.Col, end)
}
