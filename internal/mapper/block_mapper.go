package mapper

import (
	"encoding/json"

	"notecraft-be/internal/dto"
	"notecraft-be/internal/entity"
	"notecraft-be/internal/model"

	"gorm.io/datatypes"
)

type BlockMapper struct{}

func NewBlockMapper() *BlockMapper {
	return &BlockMapper{}
}

// PropsToDTO flattens a props variant into its wire form. Blocks without
// props map to nil.
func (m *BlockMapper) PropsToDTO(props entity.BlockProps) *dto.BlockProperties {
	switch p := props.(type) {
	case entity.TodoProps:
		checked := p.Checked
		return &dto.BlockProperties{Checked: &checked}
	case entity.CalloutProps:
		return &dto.BlockProperties{CalloutType: string(p.Kind)}
	case entity.CodeProps:
		return &dto.BlockProperties{Language: p.Language}
	case entity.ImageProps:
		return &dto.BlockProperties{ImageURL: p.URL, ImageCaption: p.Caption}
	}
	return nil
}

// PropsFromDTO builds the variant belonging to blockType. Fields of other
// variants are ignored; missing fields take the type's defaults.
func (m *BlockMapper) PropsFromDTO(blockType entity.BlockType, p *dto.BlockProperties) entity.BlockProps {
	if p == nil {
		p = &dto.BlockProperties{}
	}
	switch blockType {
	case entity.BlockTypeTodo:
		return entity.TodoProps{Checked: p.Checked != nil && *p.Checked}
	case entity.BlockTypeCallout:
		kind := entity.CalloutKind(p.CalloutType)
		if !kind.Valid() {
			kind = entity.CalloutInfo
		}
		return entity.CalloutProps{Kind: kind}
	case entity.BlockTypeCode:
		return entity.CodeProps{Language: p.Language}
	case entity.BlockTypeImage:
		return entity.ImageProps{URL: p.ImageURL, Caption: p.ImageCaption}
	}
	return nil
}

func (m *BlockMapper) ToResponse(b entity.Block) dto.BlockResponse {
	return dto.BlockResponse{
		Id:         b.Id,
		Type:       string(b.Type),
		Content:    b.Content,
		Properties: m.PropsToDTO(b.Props),
	}
}

func (m *BlockMapper) ToResponses(blocks []entity.Block) []dto.BlockResponse {
	res := make([]dto.BlockResponse, len(blocks))
	for i, b := range blocks {
		res[i] = m.ToResponse(b)
	}
	return res
}

func (m *BlockMapper) ToModel(pageId string, position int, b entity.Block) model.PageBlock {
	var props datatypes.JSON
	if p := m.PropsToDTO(b.Props); p != nil {
		props, _ = json.Marshal(p)
	}
	return model.PageBlock{
		PageId:     pageId,
		Id:         b.Id,
		Position:   position,
		Type:       string(b.Type),
		Content:    b.Content,
		Properties: props,
	}
}

func (m *BlockMapper) ToEntity(b *model.PageBlock) entity.Block {
	blockType := entity.BlockType(b.Type)
	var props *dto.BlockProperties
	if len(b.Properties) > 0 {
		props = &dto.BlockProperties{}
		if err := json.Unmarshal(b.Properties, props); err != nil {
			props = nil
		}
	}
	return entity.Block{
		Id:      b.Id,
		Type:    blockType,
		Content: b.Content,
		Props:   m.PropsFromDTO(blockType, props),
	}
}
