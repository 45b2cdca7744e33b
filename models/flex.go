package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexString is a JSON scalar the backend sends either as a string or as a number.
// It always marshals as a string.
type FlexString string

func (f FlexString) String() string { return string(f) }

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = FlexString(n.String())
	return nil
}

// ClientRef is one entry of a slot's "clients" array: a bare id or an object carrying id/_id.
type ClientRef string

func (c *ClientRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ID    FlexString `json:"id"`
			OID   FlexString `json:"_id"`
			Inner FlexString `json:"clientId"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		switch {
		case obj.ID != "":
			*c = ClientRef(obj.ID)
		case obj.OID != "":
			*c = ClientRef(obj.OID)
		default:
			*c = ClientRef(obj.Inner)
		}
		return nil
	}
	var f FlexString
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*c = ClientRef(f)
	return nil
}
