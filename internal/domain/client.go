package domain

import "strings"

// ClientFields are the keys that identify a client object in a request body.
var ClientFields = []string{"name", "email", "phone"}

// HasClientFields reports whether obj carries at least one client key.
func HasClientFields(obj map[string]any) bool {
	for _, key := range ClientFields {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}

// ClientPayload builds the upstream client creation body from the keys
// present in obj. Keys absent from obj are left out; explicit nulls are kept.
func ClientPayload(obj map[string]any) map[string]any {
	payload := make(map[string]any, len(ClientFields))
	for _, key := range ClientFields {
		if v, ok := obj[key]; ok {
			payload[key] = v
		}
	}
	return payload
}

// Client is an upstream client record resolved by email.
type Client struct {
	ID    any
	Name  any
	Email any
}

// NewClient reads a client record. The display name comes from "name",
// falling back to "client_name".
func NewClient(raw any) Client {
	name := Field(raw, "name")
	if name == nil {
		name = Field(raw, "client_name")
	}
	return Client{
		ID:    Field(raw, "id"),
		Name:  name,
		Email: Field(raw, "email"),
	}
}

// FindClientByEmail returns the first record whose email equals email,
// ignoring case. The second result lists every candidate email.
func FindClientByEmail(records []any, email string) (*Client, []any) {
	wanted := strings.ToLower(email)
	candidates := make([]any, 0, len(records))
	var found *Client
	for _, raw := range records {
		candidate := Field(raw, "email")
		candidates = append(candidates, candidate)
		s, ok := candidate.(string)
		if found == nil && ok && strings.ToLower(s) == wanted {
			c := NewClient(raw)
			found = &c
		}
	}
	return found, candidates
}
