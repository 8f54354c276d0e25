package database

import (
	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the schema
func InitDB(dbPath string) error {
	var err error
	DB, err = gorm.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	DB.AutoMigrate(&PantryRow{})
	seedDefaultData(DB)
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// seedDefaultData ensures a starter pantry exists in an empty database
func seedDefaultData(db *gorm.DB) {
	var count int64
	db.Model(&PantryRow{}).Count(&count)
	if count > 0 {
		return
	}

	starter := []PantryRow{
		{Name: "Milk", Price: "4.50", Weight: "1 l", Remaining: "100", AverageDays: "2", ShelfLife: "5"},
		{Name: "Eggs", Price: "3.00", Weight: "12 pcs", Remaining: "100", AverageDays: "4", ShelfLife: "14"},
		{Name: "Rice", Price: "2.00", Weight: "1 kg", Remaining: "100", AverageDays: "7", ShelfLife: "180"},
	}
	for i := range starter {
		db.Create(&starter[i])
	}
}
