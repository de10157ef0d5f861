package sqlstore

// GetSettings returns every stored key/value pair. An empty table yields an
// empty map.
func (s *Store) GetSettings() (map[string]string, error) {
	rows, err := s.db.Queryx("SELECT key, value FROM settings")
	if err != nil {
		return nil, s.classify("get settings", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, s.classify("get settings", err)
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify("get settings", err)
	}
	return settings, nil
}

// SaveSettings upserts the given keys in one transaction. Keys not present in
// settings are left alone.
func (s *Store) SaveSettings(settings map[string]string) error {
	if len(settings) == 0 {
		return nil
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return s.classify("save settings", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(tx.Rebind(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`))
	if err != nil {
		return s.classify("save settings", err)
	}
	defer stmt.Close()

	for key, value := range settings {
		if _, err := stmt.Exec(key, value); err != nil {
			return s.classify("save setting "+key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return s.classify("save settings", err)
	}
	return nil
}
