// Package session owns one running hub: its coordinator, stores and alarm.
// Every mutation made through a Session is written to disk before it returns.
package session

import (
	"io"
	"path/filepath"
	"sync"

	"github.com/janael-pinheiro/sensorhub/pkg/alarm"
	"github.com/janael-pinheiro/sensorhub/pkg/codec"
	"github.com/janael-pinheiro/sensorhub/pkg/coordinator"
	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/janael-pinheiro/sensorhub/pkg/logging"
	"github.com/janael-pinheiro/sensorhub/pkg/sensors"
	"github.com/janael-pinheiro/sensorhub/pkg/store"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Option func(*Session)

// WithCaptureSink replaces the default log sink of the alarm.
func WithCaptureSink(sink alarm.CaptureSink) Option {
	return func(s *Session) {
		s.sink = sink
	}
}

type Session struct {
	mu           sync.RWMutex
	accountsPath string
	sensorsPath  string
	logs         *logging.Logrus
	coordinator  *coordinator.Coordinator
	collector    *sensors.Collector
	accounts     *store.AccountStore
	sensors      *store.SensorStore
	sink         alarm.CaptureSink
	evaluator    *alarm.Evaluator
	log          *logrus.Entry
}

// Statistics summarises a session for display.
type Statistics struct {
	Accounts    int
	Sensors     map[entities.Kind]int
	Temperature int32
	Movement    bool
}

func (s Statistics) TotalSensors() int {
	total := 0
	for _, count := range s.Sensors {
		total += count
	}
	return total
}

// Open loads both data files under cfg.DataDir, creating the mandatory
// entities that are missing, and seeds the coordinator from the sensors.
func Open(cfg entities.HubConfig, logs *logging.Logrus, opts ...Option) (*Session, error) {
	s := &Session{
		accountsPath: filepath.Join(cfg.DataDir, codec.DataFile(cfg.AccountsFile)),
		sensorsPath:  filepath.Join(cfg.DataDir, codec.DataFile(cfg.SensorsFile)),
		logs:         logs,
		log:          logs.Get("session"),
	}
	s.coordinator = coordinator.New(logs.Get("coordinator"))
	s.collector = sensors.NewCollector(s.coordinator, cfg.Seed, logs.Get("collector"))
	for _, opt := range opts {
		opt(s)
	}
	if s.sink == nil {
		s.sink = alarm.NewLogSink(logs.Get("capture"))
	}
	s.evaluator = alarm.NewEvaluator(s.coordinator, s.sink, logs.Get("alarm"))

	if err := s.load(); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"accounts": s.accounts.Len(),
		"sensors":  s.sensors.Len(),
		"dataDir":  cfg.DataDir,
	}).Info("session opened")
	return s, nil
}

// load builds fresh stores from disk. Callers hold mu or own s exclusively.
func (s *Session) load() error {
	accounts, err := store.NewAccountStore(s.accountsPath, s.logs.Get("accounts"))
	if err != nil {
		return errors.Wrap(err, "load accounts")
	}
	sensorStore, err := store.NewSensorStore(s.sensorsPath, s.collector, s.logs.Get("sensors"))
	if err != nil {
		return errors.Wrap(err, "load sensors")
	}
	s.accounts = accounts
	s.sensors = sensorStore
	s.coordinator.InitializeFrom(s.sensors)
	return nil
}

func (s *Session) Coordinator() *coordinator.Coordinator { return s.coordinator }

func (s *Session) Accounts() *store.AccountStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts
}

func (s *Session) Sensors() *store.SensorStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sensors
}

func (s *Session) AccountsPath() string { return s.accountsPath }

func (s *Session) SensorsPath() string { return s.sensorsPath }

func (s *Session) persistAccounts(err error) error {
	if err != nil {
		return err
	}
	return s.Accounts().Save(s.accountsPath)
}

func (s *Session) persistSensors(err error) error {
	if err != nil {
		return err
	}
	return s.Sensors().Save(s.sensorsPath)
}

func (s *Session) AddAccount(account entities.Account) error {
	return s.persistAccounts(s.Accounts().Add(account))
}

func (s *Session) UpdateAccount(account entities.Account) error {
	return s.persistAccounts(s.Accounts().Update(account))
}

func (s *Session) RemoveAccount(id uint32) error {
	return s.Accounts().Remove(id)
}

func (s *Session) RenumberAccount(oldID, newID uint32) error {
	return s.persistAccounts(s.Accounts().Renumber(oldID, newID))
}

func (s *Session) Login(id uint32, nif string, secret entities.Secret) (entities.Account, error) {
	return s.Accounts().Login(id, nif, secret)
}

func (s *Session) ChangeSecret(actor entities.Account, targetID uint32, current, next entities.Secret) error {
	return s.persistAccounts(s.Accounts().ChangeSecret(actor, targetID, current, next))
}

func (s *Session) AddSensor(sensor entities.Sensor) error {
	return s.persistSensors(s.Sensors().Add(sensor))
}

func (s *Session) UpdateSensor(sensor entities.Sensor) error {
	return s.persistSensors(s.Sensors().Update(sensor))
}

func (s *Session) RemoveSensor(id uint32) error {
	return s.Sensors().Remove(id)
}

func (s *Session) RenumberSensor(oldID, newID uint32) error {
	return s.persistSensors(s.Sensors().Renumber(oldID, newID))
}

// CollectSensor runs a collection cycle on one sensor and persists it.
func (s *Session) CollectSensor(id uint32) (entities.Sensor, error) {
	sensor, err := s.Sensors().Collect(id)
	if err := s.persistSensors(err); err != nil {
		return entities.Sensor{}, err
	}
	return sensor, nil
}

// ImportSensors adds every sensor described in r. Nothing is added when a
// line fails to parse; an add failure stops the import after persisting the
// sensors added so far.
func (s *Session) ImportSensors(r io.Reader) (int, error) {
	parsed, err := codec.ReadLines(r, codec.ParseSensorLine)
	if err != nil {
		return 0, err
	}
	return importAll(s.Sensors().Store, parsed, s.sensorsPath)
}

// ImportAccounts is ImportSensors for account lines.
func (s *Session) ImportAccounts(r io.Reader) (int, error) {
	parsed, err := codec.ReadLines(r, codec.ParseAccountLine)
	if err != nil {
		return 0, err
	}
	return importAll(s.Accounts().Store, parsed, s.accountsPath)
}

func importAll[T store.Entity](target *store.Store[T], parsed []T, path string) (int, error) {
	added := 0
	var addErr error
	for _, entity := range parsed {
		if addErr = target.Add(entity); addErr != nil {
			break
		}
		added++
	}
	if added > 0 {
		if err := target.Save(path); err != nil {
			return added, err
		}
	}
	return added, addErr
}

// CheckAlarm runs the alarm and persists the refreshed frames when it fires.
func (s *Session) CheckAlarm() (bool, error) {
	sensorStore := s.Sensors()
	triggered, err := s.evaluator.CheckAlarm(sensorStore)
	if err != nil || !triggered {
		return triggered, err
	}
	return true, sensorStore.Save(s.sensorsPath)
}

func (s *Session) Statistics() Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.coordinator.State()
	return Statistics{
		Accounts:    s.accounts.Len(),
		Sensors:     s.sensors.CountByKind(),
		Temperature: state.Temperature,
		Movement:    state.Movement,
	}
}

func (s *Session) SaveAll() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.accounts.Save(s.accountsPath); err != nil {
		return err
	}
	return s.sensors.Save(s.sensorsPath)
}

// ReloadAll drops the in-memory state and reads both files again.
func (s *Session) ReloadAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	s.log.Info("session reloaded")
	return nil
}

// ClearAll removes every non-mandatory account and sensor from memory and disk.
func (s *Session) ClearAll() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.accounts.Clear(s.accountsPath); err != nil {
		return err
	}
	return s.sensors.Clear(s.sensorsPath)
}

// Close saves both stores.
func (s *Session) Close() error {
	if err := s.SaveAll(); err != nil {
		return errors.Wrap(err, "close session")
	}
	s.log.Debug("session closed")
	return nil
}
