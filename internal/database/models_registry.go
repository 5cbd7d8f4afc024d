package database

import "cafehub/internal/models"

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.City{},
		&models.Cafe{},
		&models.User{},
		&models.Like{},
	}
}
