package enums

type ActionKind string

const (
	ActionCall     ActionKind = "call"
	ActionAiChat   ActionKind = "ai_chat"
	ActionReaction ActionKind = "reaction"
	ActionBrowse   ActionKind = "browse"
)
