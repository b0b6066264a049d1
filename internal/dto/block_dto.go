package dto

// BlockProperties is the wire form of a block's type-specific payload.
// Only the fields that belong to the block's type are set.
type BlockProperties struct {
	Checked      *bool  `json:"checked,omitempty" yaml:"checked,omitempty"`
	CalloutType  string `json:"callout_type,omitempty" yaml:"callout_type,omitempty" validate:"omitempty,oneof=info warning error success"`
	Language     string `json:"language,omitempty" yaml:"language,omitempty" validate:"max=50"`
	ImageURL     string `json:"image_url,omitempty" yaml:"image_url,omitempty" validate:"max=2048"`
	ImageCaption string `json:"image_caption,omitempty" yaml:"image_caption,omitempty" validate:"max=500"`
}

type BlockResponse struct {
	Id         string           `json:"id"`
	Type       string           `json:"type"`
	Content    string           `json:"content"`
	Properties *BlockProperties `json:"properties,omitempty"`
}

type AddBlockRequest struct {
	PageId       string
	AfterBlockId string `json:"after_block_id"`
	Type         string `json:"type" validate:"omitempty,oneof=text heading1 heading2 heading3 bullet-list numbered-list quote code divider todo callout image"`
}

type AddBlockResponse struct {
	Id    string        `json:"id"`
	Block BlockResponse `json:"block"`
}

type UpdateBlockRequest struct {
	PageId  string
	BlockId string
	Content string `json:"content"`
}

type ChangeBlockTypeRequest struct {
	PageId  string
	BlockId string
	Type    string `json:"type" validate:"required,oneof=text heading1 heading2 heading3 bullet-list numbered-list quote code divider todo callout image"`
}

type SetBlockPropertiesRequest struct {
	PageId     string
	BlockId    string
	Properties BlockProperties `json:"properties"`
}

type MoveBlockRequest struct {
	PageId    string
	BlockId   string
	Direction string `json:"direction" validate:"required,oneof=up down"`
}
