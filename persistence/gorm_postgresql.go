package persistence

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormPostgreSQL is the GORM implementation, selected with database.driver
// "gorm" (the default).
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := autoMigrate(db); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// RoomModel is the persisted live state of one room, upserted after every
// successful mutation.
type RoomModel struct {
	ID        uint   `gorm:"primaryKey"`
	RoomCode  string `gorm:"uniqueIndex;not null"`
	Phase     string `gorm:"not null"`
	Round     int    `gorm:"not null"`
	Snapshot  []byte `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GameRecordModel is one finished game, appended when a room reaches
// showdown.
type GameRecordModel struct {
	ID        uint   `gorm:"primaryKey"`
	RoomCode  string `gorm:"index;not null"`
	Record    []byte `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&RoomModel{},
		&GameRecordModel{},
	)
}

func (p *GormPostgreSQL) SaveRoomState(code, phase string, round int, snapshot interface{}) error {
	snapData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	var room RoomModel
	result := p.db.Where("room_code = ?", code).First(&room)

	if result.Error == gorm.ErrRecordNotFound {
		room = RoomModel{
			RoomCode: code,
			Phase:    phase,
			Round:    round,
			Snapshot: snapData,
		}
		return p.db.Create(&room).Error
	} else if result.Error != nil {
		return result.Error
	}

	room.Phase = phase
	room.Round = round
	room.Snapshot = snapData
	room.UpdatedAt = time.Now()
	return p.db.Save(&room).Error
}

func (p *GormPostgreSQL) LoadRoomState(code string, result interface{}) error {
	var room RoomModel
	if err := p.db.Where("room_code = ?", code).First(&room).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrRecordNotFound
		}
		return err
	}

	return json.Unmarshal(room.Snapshot, result)
}

func (p *GormPostgreSQL) SaveShowdown(code string, round int, snapshot, record interface{}) error {
	recordData, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return p.db.Transaction(func(tx *gorm.DB) error {
		snapData, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}

		var room RoomModel
		result := tx.Where("room_code = ?", code).First(&room)
		if result.Error == gorm.ErrRecordNotFound {
			room = RoomModel{RoomCode: code}
		} else if result.Error != nil {
			return result.Error
		}

		room.Phase = "showdown"
		room.Round = round
		room.Snapshot = snapData
		if room.ID == 0 {
			if err := tx.Create(&room).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(&room).Error; err != nil {
				return err
			}
		}

		return tx.Create(&GameRecordModel{
			RoomCode: code,
			Record:   recordData,
		}).Error
	})
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
