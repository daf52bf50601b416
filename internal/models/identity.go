package models

import "github.com/golang-jwt/jwt/v5"

// UserType distinguishes the two classroom roles.
type UserType string

const (
	UserTypeTeacher UserType = "teacher"
	UserTypeStudent UserType = "student"
)

// Valid reports whether t is a known role.
func (t UserType) Valid() bool {
	return t == UserTypeTeacher || t == UserTypeStudent
}

// JWTClaims represents the access token payload issued by the identity provider.
type JWTClaims struct {
	UserID   int64    `json:"user_id"`
	UserType UserType `json:"user_type"`
	Email    string   `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the caller identity threaded explicitly through every service
// call. Token is the raw bearer token forwarded to the classroom API.
type Identity struct {
	UserID   int64
	UserType UserType
	Token    string
}

// IsTeacher reports whether the identity acts as a teacher.
func (i Identity) IsTeacher() bool { return i.UserType == UserTypeTeacher }

// IsStudent reports whether the identity acts as a student.
func (i Identity) IsStudent() bool { return i.UserType == UserTypeStudent }
