package entity

type BlockType string

const (
	BlockTypeText         BlockType = "text"
	BlockTypeHeading1     BlockType = "heading1"
	BlockTypeHeading2     BlockType = "heading2"
	BlockTypeHeading3     BlockType = "heading3"
	BlockTypeBulletList   BlockType = "bullet-list"
	BlockTypeNumberedList BlockType = "numbered-list"
	BlockTypeQuote        BlockType = "quote"
	BlockTypeCode         BlockType = "code"
	BlockTypeDivider      BlockType = "divider"
	BlockTypeTodo         BlockType = "todo"
	BlockTypeCallout      BlockType = "callout"
	BlockTypeImage        BlockType = "image"
)

// BlockTypes lists every block type in slash-menu order.
var BlockTypes = []BlockType{
	BlockTypeText,
	BlockTypeHeading1,
	BlockTypeHeading2,
	BlockTypeHeading3,
	BlockTypeBulletList,
	BlockTypeNumberedList,
	BlockTypeTodo,
	BlockTypeQuote,
	BlockTypeCode,
	BlockTypeCallout,
	BlockTypeDivider,
	BlockTypeImage,
}

func (t BlockType) Valid() bool {
	for _, bt := range BlockTypes {
		if bt == t {
			return true
		}
	}
	return false
}

type CalloutKind string

const (
	CalloutInfo    CalloutKind = "info"
	CalloutWarning CalloutKind = "warning"
	CalloutError   CalloutKind = "error"
	CalloutSuccess CalloutKind = "success"
)

func (k CalloutKind) Valid() bool {
	switch k {
	case CalloutInfo, CalloutWarning, CalloutError, CalloutSuccess:
		return true
	}
	return false
}

// BlockProps is the type-specific payload of a block. Only todo, callout,
// code and image blocks carry one; every other type has nil props.
type BlockProps interface {
	BlockType() BlockType
}

type TodoProps struct {
	Checked bool
}

func (TodoProps) BlockType() BlockType { return BlockTypeTodo }

type CalloutProps struct {
	Kind CalloutKind
}

func (CalloutProps) BlockType() BlockType { return BlockTypeCallout }

type CodeProps struct {
	Language string
}

func (CodeProps) BlockType() BlockType { return BlockTypeCode }

type ImageProps struct {
	URL     string
	Caption string
}

func (ImageProps) BlockType() BlockType { return BlockTypeImage }

// DefaultProps returns the properties a block gets when it is created with,
// or switched to, the given type.
func DefaultProps(t BlockType) BlockProps {
	switch t {
	case BlockTypeTodo:
		return TodoProps{Checked: false}
	case BlockTypeCallout:
		return CalloutProps{Kind: CalloutInfo}
	default:
		return nil
	}
}

// Block props are value types, so copying a Block copies its props.
type Block struct {
	Id      string
	Type    BlockType
	Content string
	Props   BlockProps
}

// Checked reports the todo state; false for any non-todo block.
func (b Block) Checked() bool {
	if p, ok := b.Props.(TodoProps); ok {
		return p.Checked
	}
	return false
}
