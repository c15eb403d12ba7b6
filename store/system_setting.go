package store

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/openleaf/openleaf/model"
	"github.com/openleaf/openleaf/util"
)

func (s *Store) GetSystemSetting(name string) (*model.SystemSetting, error) {
	if cache, ok := s.SystemSettingCache.Load(name); ok {
		return cache.(*model.SystemSetting), nil
	}

	setting := &model.SystemSetting{}
	stmt := `
    SELECT name, value, description FROM system_settings WHERE name = ?
	`
	if err := s.db.QueryRow(stmt, name).Scan(&setting.Name, &setting.Value, &setting.Description); err != nil {
		return nil, errors.Wrap(err, "failed to get system setting")
	}

	s.SystemSettingCache.Store(name, setting)
	return setting, nil
}

func (s *Store) UpsertSystemSetting(setting *model.SystemSetting) (*model.SystemSetting, error) {
	stmt := `
		INSERT INTO system_settings (name, value, description)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE
		SET
			value=EXCLUDED.value,
			description=EXCLUDED.description
		RETURNING name, value, description
	`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	var stored model.SystemSetting
	if err := s.db.QueryRow(stmt, setting.Name, setting.Value, setting.Description).Scan(
		&stored.Name,
		&stored.Value,
		&stored.Description,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert system setting")
	}

	s.SystemSettingCache.Store(stored.Name, &stored)
	return &stored, nil
}

// GetSystemSecuritySetting returns the stored security settings,
// generating and persisting a fresh JWT secret on first run.
func (s *Store) GetSystemSecuritySetting() (*model.SystemSettingSecurity, error) {
	systemSetting, err := s.GetSystemSetting(model.SettingTypeSecurity)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			secret, err := util.RandomString(32)
			if err != nil {
				return nil, errors.Wrap(err, "failed to generate JWT secret")
			}
			security := &model.SystemSettingSecurity{JWTSecret: secret}
			if _, err := s.UpsertSystemSetting(&model.SystemSetting{
				Name:        model.SettingTypeSecurity,
				Value:       security.ToJSON(),
				Description: "Security settings",
			}); err != nil {
				return nil, errors.Wrap(err, "failed to store security setting")
			}
			return security, nil
		}
		return nil, err
	}

	security := &model.SystemSettingSecurity{}
	if err := json.Unmarshal([]byte(systemSetting.Value), security); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal security setting")
	}
	return security, nil
}
