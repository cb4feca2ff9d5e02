package ast

type (
	FileID     uint32
	DeclID     uint32
	NodeID     uint32
	IfConfigID uint32
)

const (
	NoFileID     FileID     = 0
	NoDeclID     DeclID     = 0
	NoNodeID     NodeID     = 0
	NoIfConfigID IfConfigID = 0
)

func (id FileID) IsValid() bool     { return id != NoFileID }
func (id DeclID) IsValid() bool     { return id != NoDeclID }
func (id NodeID) IsValid() bool     { return id != NoNodeID }
func (id IfConfigID) IsValid() bool { return id != NoIfConfigID }
