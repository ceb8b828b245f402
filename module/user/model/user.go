package model

import "time"

// User is the account main record. Preferences and devices would live in
// separate tables if this grew; only what the chat surface needs is here.
type User struct {
	UserID       int64     `bson:"user_id" json:"userId"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	PictureURL   string    `bson:"picture_url" json:"pictureUrl"`
	CreateTime   time.Time `bson:"create_time" json:"createTime"`
	UpdateTime   time.Time `bson:"update_time" json:"updateTime"`
}

func (User) Collection() string { return "users" }

// Public is the shape exposed to other users (no credential material).
type Public struct {
	UserID     int64  `json:"userId"`
	Username   string `json:"username"`
	PictureURL string `json:"pictureUrl"`
}

func (u *User) Public() Public {
	return Public{UserID: u.UserID, Username: u.Username, PictureURL: u.PictureURL}
}
