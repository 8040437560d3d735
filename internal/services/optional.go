package services

import (
	"bytes"
	"encoding/json"

	"github.com/gofrs/uuid"
)

// OptionalUUID records whether a nullable reference appeared in the request
// body. An absent field leaves the stored value unchanged; an explicit null
// clears it.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}
