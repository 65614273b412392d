package enums

type ReactionKind string

const (
	ReactionKindLike    ReactionKind = "like"
	ReactionKindComment ReactionKind = "comment"
	ReactionKindSave    ReactionKind = "save"
	ReactionKindFollow  ReactionKind = "follow"
)
