package chain

import (
	"github.com/anyswap/eosio-client/common"
)

// PermissionLevel names an actor and the permission it signs under.
type PermissionLevel struct {
	Actor      Name `json:"actor"`
	Permission Name `json:"permission"`
}

func (pl PermissionLevel) Marshal(e *Encoder) error {
	if err := pl.Actor.Marshal(e); err != nil {
		return err
	}
	return pl.Permission.Marshal(e)
}

func (pl *PermissionLevel) Unmarshal(d *Decoder) error {
	if err := pl.Actor.Unmarshal(d); err != nil {
		return err
	}
	return pl.Permission.Unmarshal(d)
}

// Action is one contract invocation within a transaction. Data holds
// the already serialized action arguments; binding a typed value to an
// action goes through the abi package.
type Action struct {
	Account       Name              `json:"account"`
	Name          Name              `json:"name"`
	Authorization []PermissionLevel `json:"authorization"`
	Data          common.HexBytes   `json:"data"`
}

// NewAction builds an action around an opaque serialized payload.
func NewAction(account, name Name, auth []PermissionLevel, data []byte) *Action {
	return &Action{
		Account:       account,
		Name:          name,
		Authorization: auth,
		Data:          data,
	}
}

func (a *Action) Marshal(e *Encoder) error {
	if err := a.Account.Marshal(e); err != nil {
		return err
	}
	if err := a.Name.Marshal(e); err != nil {
		return err
	}
	e.WriteVarUint32(uint32(len(a.Authorization)))
	for i := range a.Authorization {
		if err := a.Authorization[i].Marshal(e); err != nil {
			return err
		}
	}
	e.WriteBytes(a.Data)
	return nil
}

func (a *Action) Unmarshal(d *Decoder) error {
	if err := a.Account.Unmarshal(d); err != nil {
		return err
	}
	if err := a.Name.Unmarshal(d); err != nil {
		return err
	}
	count, err := d.ReadVarUint32()
	if err != nil {
		return err
	}
	if uint64(d.Remaining()) < uint64(count)*16 {
		return ErrUnexpectedEOF
	}
	a.Authorization = make([]PermissionLevel, count)
	for i := range a.Authorization {
		if err := a.Authorization[i].Unmarshal(d); err != nil {
			return err
		}
	}
	data, err := d.ReadBytes()
	if err != nil {
		return err
	}
	a.Data = data
	return nil
}
