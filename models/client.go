package models

import "encoding/json"

// ClientRecord is the detail data of a gym client. The booking engine only caches it.
type ClientRecord struct {
	ID       FlexString `bson:"id" json:"id"`
	Name     string     `bson:"name" json:"name"`
	LastName string     `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Email    string     `bson:"email,omitempty" json:"email,omitempty"`
	CI       string     `bson:"ci,omitempty" json:"ci,omitempty"` // identification number
	Phone    string     `bson:"phone,omitempty" json:"phone,omitempty"`
}

// UnmarshalJSON accepts the id as either "id" or "_id", preferring "id".
func (c *ClientRecord) UnmarshalJSON(data []byte) error {
	type plain ClientRecord
	var aux struct {
		plain
		OID FlexString `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = ClientRecord(aux.plain)
	if c.ID == "" {
		c.ID = aux.OID
	}
	return nil
}

// ClientListRequest is the body of the batch client fetch.
type ClientListRequest struct {
	ClientIDs []string `json:"clientIds" binding:"required"`
}

// AssignableClientsQuery filters the assignable-clients search. FreeText is matched
// against name, email and CI.
type AssignableClientsQuery struct {
	FreeText string `form:"q" json:"q,omitempty"`
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"limit" json:"limit"`
}

// AssignableClientsPage is one page of an assignable-clients search.
type AssignableClientsPage struct {
	Data  []ClientRecord `json:"data"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
}
