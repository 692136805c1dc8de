package requests

import "encoding/json"

// MediaBatchRequest is the JSON form of a media batch. action and path are kept
// raw so a non-string value is reported as a field error instead of a decode failure.
type MediaBatchRequest struct {
	Action json.RawMessage   `json:"action" swaggertype:"string" enums:"store,update,delete"`
	Path   json.RawMessage   `json:"path" swaggertype:"string"`
	Data   []json.RawMessage `json:"data" swaggertype:"array,object"`
}

// MediaItemRequest is one entry of MediaBatchRequest.Data.
type MediaItemRequest struct {
	ID         string              `json:"id"`
	Content    string              `json:"content"`
	FileName   string              `json:"filename"`
	Attributes MediaAttributesBody `json:"attributes"`
}

type MediaAttributesBody struct {
	FileName string `json:"filename"`
}
