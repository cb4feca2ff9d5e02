package ast

import "inlinable/internal/source"

type File struct {
	Span source.Span
	// Decls: верхнеуровневые объявления, включая поднятые из активных #if.
	Decls []DeclID
	// Layout: элементы верхнего уровня в исходном порядке.
	Layout []NodeID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{Arena: NewArena[File](capHint)}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Span: sp}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
