package model

import "time"

// Student is a registered pupil of the tuition centre.
type Student struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	ClassLevel   int       `json:"class_level"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	QuizzesTaken int       `json:"quizzes_taken"`
	AvgScore     float64   `json:"avg_score"`
	CreatedAt    time.Time `json:"created_at"`
}

// StudentSignupRequest is the payload for self-registration.
type StudentSignupRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	ClassLevel int    `json:"class_level" binding:"required,min=6,max=12"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone" binding:"omitempty,max=20"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
}

// StudentLoginRequest matches the portal login form: name, class, password.
type StudentLoginRequest struct {
	Name       string `json:"name" binding:"required"`
	ClassLevel int    `json:"class_level" binding:"required,min=6,max=12"`
	Password   string `json:"password" binding:"required"`
}

// TeacherLoginRequest is the payload for the teacher dashboard login.
type TeacherLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// CreateStudentRequest is the payload for the teacher adding a student.
type CreateStudentRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	ClassLevel int    `json:"class_level" binding:"required,min=6,max=12"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone" binding:"omitempty,max=20"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
}

// UpdateStudentRequest is the payload for editing a student.
type UpdateStudentRequest struct {
	Name       string `json:"name" binding:"omitempty,min=2,max=100"`
	ClassLevel int    `json:"class_level" binding:"omitempty,min=6,max=12"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone" binding:"omitempty,max=20"`
	Password   string `json:"password" binding:"omitempty,min=6,max=72"`
}
