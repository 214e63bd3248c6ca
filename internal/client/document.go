package client

// requestDocument is the envelope for mutating requests. Attributes carry
// the resource payload and Relationships is populated only when the caller
// links the new resource to an existing one.
type requestDocument struct {
	Data requestResource `json:"data"`
}

type requestResource struct {
	Type          string                 `json:"type"`
	Attributes    interface{}            `json:"attributes"`
	Relationships map[string]interface{} `json:"relationships,omitempty"`
}

func newCreateDocument(resourceType string, attributes interface{}) *requestDocument {
	return &requestDocument{
		Data: requestResource{
			Type:       resourceType,
			Attributes: attributes,
		},
	}
}

func newCreateDocumentWithRelationships(resourceType string, attributes interface{}, relationships map[string]interface{}) *requestDocument {
	return &requestDocument{
		Data: requestResource{
			Type:          resourceType,
			Attributes:    attributes,
			Relationships: relationships,
		},
	}
}
