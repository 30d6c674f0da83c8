package store

import (
	"strings"
	"testing"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type accountStoreSuite struct {
	suite.Suite
	accounts *AccountStore
	employee entities.Account
}

func (s *accountStoreSuite) SetupTest() {
	log, _ := createNullLogger()
	accounts, err := NewAccountStore(dataPath(s.T(), "users"), log)
	require.NoError(s.T(), err)
	s.accounts = accounts
	s.employee, err = entities.NewAccount(20000, "11122233", "hunter2", entities.RoleStandard)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.accounts.Add(s.employee))
}

func (s *accountStoreSuite) TestLogin() {
	account, err := s.accounts.Login(20000, "11122233", "hunter2")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.employee, account)

	admin, err := s.accounts.Login(entities.DefaultAdminID, entities.DefaultAdminNIF, entities.DefaultAdminSecret)
	require.NoError(s.T(), err)
	assert.True(s.T(), admin.IsElevated())
}

func (s *accountStoreSuite) TestLoginFailures() {
	attempts := []struct {
		id     uint32
		nif    string
		secret entities.Secret
	}{
		{20000, "11122233", "wrong"},
		{20000, "00000000", "hunter2"},
		{30000, "11122233", "hunter2"},
	}
	for _, attempt := range attempts {
		_, err := s.accounts.Login(attempt.id, attempt.nif, attempt.secret)
		assert.ErrorIs(s.T(), err, entities.ErrAuthentication)
	}
}

func (s *accountStoreSuite) TestDefaultAdminCannotBeDemoted() {
	admin := entities.DefaultAdmin()
	admin.Role = entities.RoleStandard
	assert.ErrorIs(s.T(), s.accounts.Update(admin), entities.ErrProtectedEntity)

	admin = entities.DefaultAdmin()
	admin.NIF = "99999999"
	assert.NoError(s.T(), s.accounts.Update(admin))
}

func (s *accountStoreSuite) TestUpdateRejectsEmptyFields() {
	broken := s.employee
	broken.Secret = ""
	assert.ErrorIs(s.T(), s.accounts.Update(broken), entities.ErrInvalidInput)
}

func (s *accountStoreSuite) TestStandardActorChangesOwnSecret() {
	err := s.accounts.ChangeSecret(s.employee, 20000, "hunter2", "correct horse")
	require.NoError(s.T(), err)
	_, err = s.accounts.Login(20000, "11122233", "correct horse")
	assert.NoError(s.T(), err)
}

func (s *accountStoreSuite) TestStandardActorNeedsCurrentSecret() {
	err := s.accounts.ChangeSecret(s.employee, 20000, "guess", "next")
	assert.ErrorIs(s.T(), err, entities.ErrAuthentication)
}

func (s *accountStoreSuite) TestStandardActorCannotChangeOthers() {
	err := s.accounts.ChangeSecret(s.employee, entities.DefaultAdminID, entities.DefaultAdminSecret, "next")
	assert.ErrorIs(s.T(), err, entities.ErrPermissionDenied)
}

func (s *accountStoreSuite) TestElevatedActorChangesAnySecret() {
	err := s.accounts.ChangeSecret(entities.DefaultAdmin(), 20000, "", "reset")
	require.NoError(s.T(), err)
	_, err = s.accounts.Login(20000, "11122233", "reset")
	assert.NoError(s.T(), err)
}

func (s *accountStoreSuite) TestChangeSecretValidation() {
	admin := entities.DefaultAdmin()
	assert.ErrorIs(s.T(), s.accounts.ChangeSecret(admin, 20000, "", ""), entities.ErrInvalidInput)
	assert.ErrorIs(s.T(), s.accounts.ChangeSecret(admin, 55555, "", "next"), entities.ErrNotFound)
}

func (s *accountStoreSuite) TestChangeSecretRejectsOverlongSecret() {
	next := entities.Secret(strings.Repeat("x", entities.SecretCapacity))
	err := s.accounts.ChangeSecret(entities.DefaultAdmin(), 20000, "", next)
	assert.ErrorIs(s.T(), err, entities.ErrInvalidInput)

	_, err = s.accounts.Login(20000, "11122233", "hunter2")
	assert.NoError(s.T(), err)
}

func (s *accountStoreSuite) TestSaveAndReload() {
	path := s.accounts.path
	require.NoError(s.T(), s.accounts.Save(path))

	log, _ := createNullLogger()
	reloaded, err := NewAccountStore(path, log)
	require.NoError(s.T(), err)
	assert.ElementsMatch(s.T(), s.accounts.All(), reloaded.All())
}

func TestAccountStoreSuite(t *testing.T) {
	suite.Run(t, new(accountStoreSuite))
}
