package models

import (
	"encoding/json"
	"time"
)

// Provider is a clinician offering treatments.
type Provider struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name" binding:"required"`
	Email     string    `bson:"email" json:"email" binding:"required,email"`
	Specialty string    `bson:"specialty" json:"specialty"`
	Image     string    `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	Extra     Extras    `bson:",inline" json:"-"`
}

type providerJSON Provider

func (p *Provider) UnmarshalJSON(data []byte) error {
	var typed providerJSON
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	extra, err := splitExtras(data, typed)
	if err != nil {
		return err
	}
	*p = Provider(typed)
	p.Extra = extra
	return nil
}

func (p Provider) MarshalJSON() ([]byte, error) {
	return mergeExtras(providerJSON(p), p.Extra)
}
