package store

import (
	"crypto/subtle"

	"github.com/janael-pinheiro/sensorhub/pkg/codec"
	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AccountStore holds the accounts and always contains the default admin.
type AccountStore struct {
	*Store[entities.Account]
}

func accountPolicy() Policy[entities.Account] {
	return Policy[entities.Account]{
		Protected: entities.Account.IsDefaultAdmin,
		Validate: func(account entities.Account) error {
			_, err := entities.NewAccount(account.ID, account.NIF, account.Secret, account.Role)
			return err
		},
		CheckUpdate: func(current, next entities.Account) error {
			if current.IsDefaultAdmin() && !next.IsElevated() {
				return errors.Wrapf(entities.ErrProtectedEntity, "account %d must stay elevated", current.ID)
			}
			return nil
		},
		Rename: func(account entities.Account, id uint32) entities.Account {
			account.ID = id
			return account
		},
	}
}

// NewAccountStore loads path and adds the default admin when it is missing.
func NewAccountStore(path string, log *logrus.Entry) (*AccountStore, error) {
	return newAccountStore(path, &fileManagement{}, log)
}

func newAccountStore(path string, fs filesystemManagement, log *logrus.Entry) (*AccountStore, error) {
	accounts := &AccountStore{newStore(path, codec.AccountCodec{}, accountPolicy(), fs, log)}
	if _, err := accounts.Load(path); err != nil {
		return nil, err
	}
	if accounts.ensure(entities.DefaultAdmin()) {
		log.WithField("id", entities.DefaultAdminID).Info("default admin account created")
	}
	return accounts, nil
}

func secretsMatch(stored, presented entities.Secret) bool {
	return subtle.ConstantTimeCompare([]byte(stored.Reveal()), []byte(presented.Reveal())) == 1
}

// Login returns the account matching all three credentials. Unknown
// identifiers and wrong credentials fail the same way.
func (s *AccountStore) Login(id uint32, nif string, secret entities.Secret) (entities.Account, error) {
	account, ok := s.FindByID(id)
	nifMatch := subtle.ConstantTimeCompare([]byte(account.NIF), []byte(nif)) == 1
	if !ok || !nifMatch || !secretsMatch(account.Secret, secret) {
		s.log.WithField("id", id).Warn("login rejected")
		return entities.Account{}, errors.Wrapf(entities.ErrAuthentication, "account %d", id)
	}
	return account, nil
}

// ChangeSecret replaces the secret of targetID. Elevated actors may change
// any secret; standard actors only their own and must present the current one.
func (s *AccountStore) ChangeSecret(actor entities.Account, targetID uint32, current, next entities.Secret) error {
	if next == "" {
		return errors.Wrap(entities.ErrInvalidInput, "new secret must not be empty")
	}
	if !actor.IsElevated() && actor.ID != targetID {
		return errors.Wrapf(entities.ErrPermissionDenied, "account %d cannot change the secret of %d", actor.ID, targetID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(targetID)
	if i < 0 {
		return errors.Wrapf(entities.ErrNotFound, "account %d", targetID)
	}
	if !actor.IsElevated() && !secretsMatch(s.entities[i].Secret, current) {
		return errors.Wrapf(entities.ErrAuthentication, "account %d", targetID)
	}
	updated := s.entities[i]
	updated.Secret = next
	if err := s.policy.Validate(updated); err != nil {
		return err
	}
	s.entities[i] = updated
	s.log.WithFields(logrus.Fields{"actor": actor.ID, "id": targetID}).Info("secret changed")
	return nil
}
