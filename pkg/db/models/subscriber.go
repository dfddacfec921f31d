package models

import "time"

type Subscriber struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Verified  bool      `gorm:"column:verified;not null;default:false" json:"verified"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

type ContactRequest struct {
	ID                 int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name               string    `gorm:"column:name;not null"`
	Email              string    `gorm:"column:email;not null"`
	Message            string    `gorm:"column:message;not null"`
	IsTailoringRequest bool      `gorm:"column:is_tailoring_request;not null;default:false"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// All lists every model for AutoMigrate on SQLite.
func All() []any {
	return []any{&Product{}, &Order{}, &CustomTailoring{}, &Subscriber{}, &ContactRequest{}}
}
