package config

import (
	"taskboard/internal/entity"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Project{},
		&entity.ProjectMember{},
		&entity.Task{},
		&entity.TaskComment{},
		&entity.SecurityLog{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
