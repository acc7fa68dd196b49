package presentation

import (
	"registrar/internal/domain/enrollment"
)

// CourseDTO represents a course for presentation
type CourseDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Instructor     string   `json:"instructor,omitempty"`
	MaxStudents    int      `json:"max_students"`
	Enrolled       int      `json:"enrolled"`
	AvailableSeats int      `json:"available_seats"`
	Days           string   `json:"days,omitempty"`
	Time           string   `json:"time,omitempty"`
	Location       string   `json:"location,omitempty"`
	Students       []string `json:"students,omitempty"`
}

// StudentDTO represents a student for presentation
type StudentDTO struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Courses []string `json:"courses"` // always present, sorted by course id
}

// FromDomainCourse converts a domain course to a DTO
func FromDomainCourse(course *enrollment.Course) CourseDTO {
	return CourseDTO{
		ID:             course.ID(),
		Name:           course.Name(),
		Instructor:     course.Instructor(),
		MaxStudents:    course.MaxStudents(),
		Enrolled:       course.EnrollmentCount(),
		AvailableSeats: course.AvailableSeats(),
		Days:           course.Days(),
		Time:           course.MeetingTime(),
		Location:       course.Location(),
		Students:       course.EnrolledStudents(),
	}
}

// FromDomainStudent converts a domain student to a DTO
func FromDomainStudent(student *enrollment.Student) StudentDTO {
	courses := student.RegisteredCourses()
	if courses == nil {
		courses = []string{}
	}
	return StudentDTO{
		ID:      student.ID(),
		Name:    student.Name(),
		Courses: courses,
	}
}
