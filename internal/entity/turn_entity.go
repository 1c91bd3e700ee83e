package entity

const (
	TurnTypeHuman = "human"
	TurnTypeAI    = "ai"
)

// Turn is one message exchange unit in a chat's history. The shape mirrors
// what is stored in the message table: a type tag plus a data payload that
// may carry generator metadata alongside the text content.
type Turn struct {
	Type string   `json:"type"`
	Data TurnData `json:"data"`
}

type TurnData struct {
	Content          string                 `json:"content"`
	AdditionalKwargs map[string]interface{} `json:"additional_kwargs,omitempty"`
}

func NewHumanTurn(content string) Turn {
	return Turn{Type: TurnTypeHuman, Data: TurnData{Content: content}}
}

func NewAITurn(content string) Turn {
	return Turn{Type: TurnTypeAI, Data: TurnData{Content: content}}
}
