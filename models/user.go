package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      Role               `bson:"role" json:"role"`
	StudentID string             `bson:"student_id,omitempty" json:"studentID,omitempty"`

	Bio       string   `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar    string   `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Interests []string `bson:"interests,omitempty" json:"interests,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
