package models

import "time"

// Enrollment ties a student to a course. The composite unique index is the
// final guard against double enrollment under concurrent requests. The
// snapshot fields keep the record readable after the user or course is edited
// or deleted. No foreign key constraints: permanently deleting a course
// leaves its enrollments behind, and the read paths tolerate those orphans.
type Enrollment struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	StudentID          uint      `gorm:"uniqueIndex:idx_student_course;index;not null" json:"studentId"`
	CourseID           uint      `gorm:"uniqueIndex:idx_student_course;index;not null" json:"courseId"`
	EnrollmentDate     time.Time `gorm:"index" json:"enrollmentDate"`
	StudentName        string    `gorm:"not null" json:"studentName"`
	RegistrationNumber string    `json:"registrationNumber"`
	CourseTitle        string    `gorm:"not null" json:"courseTitle"`
	CourseCode         string    `gorm:"not null" json:"courseCode"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
