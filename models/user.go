package models

import (
	"encoding/json"
	"time"
)

const RoleAdmin = "admin"

// Account is a client or staff member known to the clinic.
type Account struct {
	ID        string    `bson:"id" json:"id"`
	Email     string    `bson:"email" json:"email" validate:"required,email"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	Role      string    `bson:"role,omitempty" json:"role,omitempty"` // "" or "admin"
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	Extra     Extras    `bson:",inline" json:"-"`
}

func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

type accountJSON Account

func (a *Account) UnmarshalJSON(data []byte) error {
	var typed accountJSON
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	extra, err := splitExtras(data, typed)
	if err != nil {
		return err
	}
	*a = Account(typed)
	a.Extra = extra
	return nil
}

func (a Account) MarshalJSON() ([]byte, error) {
	return mergeExtras(accountJSON(a), a.Extra)
}
