package contract

func userSchema() *Schema {
	return &Schema{
		Type: SchemaType{TypeObject},
		Properties: Properties{
			{Name: "id", Schema: &Schema{Type: SchemaType{"string"}}},
			{Name: "email", Schema: &Schema{Type: SchemaType{"string"}}},
		},
	}
}

func sampleContract() *Contract {
	return &Contract{
		Title:   "Shop",
		Version: "1.0.0",
		Schemas: map[string]*Schema{
			"User":  userSchema(),
			"Error": {Type: SchemaType{TypeObject}, Properties: Properties{{Name: "message", Schema: &Schema{Type: SchemaType{"string"}}}}},
			"Loop1": {Ref: "#/components/schemas/Loop2"},
			"Loop2": {Ref: "#/components/schemas/Loop1"},
		},
		Operations: []Operation{
			{
				ID: "createUser", Method: "POST", Path: "/users",
				Responses: map[string]*Schema{
					"201": {Ref: "#/components/schemas/User"},
					"400": {Ref: "#/components/schemas/Error"},
				},
			},
			{
				ID: "getUser", Method: "GET", Path: "/users/{id}",
				Responses: map[string]*Schema{"200": {Ref: "#/definitions/User"}},
			},
			{ID: "listItemsV1", Method: "GET", Path: "/api/v1/items"},
			{ID: "listItemsV2", Method: "GET", Path: "/api/v2/items"},
			{
				ID: "getOrder", Method: "GET", Path: "/api/v1/orders/{orderId}",
				Responses: map[string]*Schema{"202": {Type: SchemaType{TypeObject}}},
			},
			{ID: "deleteUser", Method: "DELETE", Path: "/users/{id}", Responses: map[string]*Schema{"204": nil}},
			{ID: "health", Method: "GET", Path: "/health", Responses: map[string]*Schema{"default": {Type: SchemaType{"string"}}}},
		},
	}
}
