package http

import "encoding/json"

type submitRequest struct {
	Answer      json.RawMessage     `json:"answer"`
	Reviews     []reviewFlagRequest `json:"reviews" validate:"omitempty,unique=UserID,dive"`
	StopWorking bool                `json:"stop_working"`
}

type reviewFlagRequest struct {
	UserID  string `json:"user_id" validate:"required,custom_id,min=1,max=100"`
	Comment string `json:"comment" validate:"max=2000"`
}

type deleteClaimsRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,max=500"`
}
