package models

import "time"

type User struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Mood is one of the five fixed mood categories an entry may carry.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodGood    Mood = "good"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodUpset   Mood = "upset"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodHappy, MoodGood, MoodNeutral, MoodSad, MoodUpset:
		return true
	}
	return false
}

type MoodEntry struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Mood      Mood      `db:"mood" json:"mood"`
	Journal   string    `db:"journal" json:"journal"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
