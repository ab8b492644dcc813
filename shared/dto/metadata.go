package dto

import (
	"vietour/shared/constant"
	"vietour/shared/model"
	"vietour/shared/timezone"
)

type Metadata struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	if !model.CreatedAt.IsZero() {
		m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	}

	if !model.UpdatedAt.IsZero() {
		m.UpdatedAt = timezone.Format(model.UpdatedAt, constant.DateFormat)
	}
}
