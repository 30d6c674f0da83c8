package entities

import "github.com/pkg/errors"

// Identifier bounds shared by accounts and sensors.
const (
	MinIdentifier uint32 = 10000
	MaxIdentifier uint32 = 99999
)

// Buffer capacities of the account record, terminator included.
const (
	NIFCapacity    = 9
	SecretCapacity = 256
)

// NIFLength is the exact length of a NIF.
const NIFLength = NIFCapacity - 1

const (
	DefaultAdminID     uint32 = 10000
	DefaultAdminNIF    string = "00000000"
	DefaultAdminSecret Secret = "admin"
)

// Role values are written to disk as-is. Do not renumber.
type Role uint32

const (
	RoleElevated Role = 0
	RoleStandard Role = 1
)

func (r Role) Valid() bool {
	switch r {
	case RoleElevated, RoleStandard:
		return true
	}
	return false
}

// Account is a login identity. Secret is stored as given; hashing is out of scope.
type Account struct {
	ID     uint32
	NIF    string
	Secret Secret
	Role   Role
}

func NewAccount(id uint32, nif string, secret Secret, role Role) (Account, error) {
	if !ValidIdentifier(id) {
		return Account{}, errors.Wrapf(ErrOutOfRange, "account %d", id)
	}
	if len(nif) != NIFLength {
		return Account{}, errors.Wrapf(ErrInvalidInput, "nif must be %d characters", NIFLength)
	}
	if secret == "" {
		return Account{}, errors.Wrap(ErrInvalidInput, "secret must not be empty")
	}
	if len(secret) >= SecretCapacity {
		return Account{}, errors.Wrapf(ErrInvalidInput, "secret exceeds %d characters", SecretCapacity-1)
	}
	if !role.Valid() {
		return Account{}, errors.Wrapf(ErrInvalidInput, "unknown role %d", role)
	}
	return Account{ID: id, NIF: nif, Secret: secret, Role: role}, nil
}

// DefaultAdmin returns the mandatory elevated account.
func DefaultAdmin() Account {
	return Account{ID: DefaultAdminID, NIF: DefaultAdminNIF, Secret: DefaultAdminSecret, Role: RoleElevated}
}

func (a Account) Identifier() uint32 { return a.ID }

func (a Account) IsDefaultAdmin() bool { return a.ID == DefaultAdminID }

func (a Account) IsElevated() bool { return a.Role == RoleElevated }

func ValidIdentifier(id uint32) bool {
	return id >= MinIdentifier && id <= MaxIdentifier
}
