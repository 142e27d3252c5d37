// Package webmap is the message bus between the host and the embedded
// web-map surface. The surface runs in its own process and shares no
// memory with the host; the full raw collection crosses the boundary as
// a single serialized message on every snapshot.
package webmap

import (
	"encoding/json"
	"fmt"

	"github.com/grest/greenspace-server/internal/model"
)

// Action tags the closed message set. Host to surface: loadPoints,
// search. Surface to host: edit, delete. Nothing else crosses the
// boundary.
type Action string

const (
	ActionLoadPoints Action = "loadPoints"
	ActionSearch     Action = "search"
	ActionEdit       Action = "edit"
	ActionDelete     Action = "delete"
)

// Message is the envelope for both directions.
type Message struct {
	Action Action          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// EditRequest identifies the point the surface wants edited.
type EditRequest struct {
	ID string `json:"id"`
}

// DeleteRequest carries the name as well so the host can phrase the
// confirmation prompt.
type DeleteRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewLoadPoints(snap []model.Point) (Message, error) {
	return wrap(ActionLoadPoints, snap)
}

func NewSearch(query string) (Message, error) {
	return wrap(ActionSearch, query)
}

func NewEdit(id string) (Message, error) {
	return wrap(ActionEdit, EditRequest{ID: id})
}

func NewDelete(id, name string) (Message, error) {
	return wrap(ActionDelete, DeleteRequest{ID: id, Name: name})
}

func wrap(a Action, data interface{}) (Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Message{}, err
	}
	return Message{Action: a, Data: raw}, nil
}

// Validate rejects tags outside the closed set.
func (m *Message) Validate() error {
	switch m.Action {
	case ActionLoadPoints, ActionSearch, ActionEdit, ActionDelete:
		return nil
	default:
		return fmt.Errorf("unknown message action %q", m.Action)
	}
}

// LoadPoints decodes the snapshot payload.
func (m *Message) LoadPoints() ([]model.Point, error) {
	if m.Action != ActionLoadPoints {
		return nil, fmt.Errorf("message is %q, not %q", m.Action, ActionLoadPoints)
	}
	var snap []model.Point
	if err := json.Unmarshal(m.Data, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Search decodes the query payload.
func (m *Message) Search() (string, error) {
	if m.Action != ActionSearch {
		return "", fmt.Errorf("message is %q, not %q", m.Action, ActionSearch)
	}
	var q string
	if err := json.Unmarshal(m.Data, &q); err != nil {
		return "", err
	}
	return q, nil
}

// Edit decodes the edit request payload.
func (m *Message) Edit() (EditRequest, error) {
	var req EditRequest
	if m.Action != ActionEdit {
		return req, fmt.Errorf("message is %q, not %q", m.Action, ActionEdit)
	}
	err := json.Unmarshal(m.Data, &req)
	return req, err
}

// Delete decodes the delete request payload.
func (m *Message) Delete() (DeleteRequest, error) {
	var req DeleteRequest
	if m.Action != ActionDelete {
		return req, fmt.Errorf("message is %q, not %q", m.Action, ActionDelete)
	}
	err := json.Unmarshal(m.Data, &req)
	return req, err
}
