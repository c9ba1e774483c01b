package db

import (
	"fmt"
	"log"

	"go-confession-board/internal/model"
	"go-confession-board/pkg/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the MySQL connection and migrates all tables.
func InitDB() error {
	var err error
	DB, err = gorm.Open(mysql.Open(config.GlobalConfig.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = DB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Group{},
		&model.GroupMember{},
		&model.GroupInvitation{},
		&model.Rule{},
		&model.Post{},
		&model.Confession{},
		&model.Comment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database connected and migrated successfully")
	return nil
}
