package testutil

import "fmt"

// WithStandardCatalog adds a small course catalog with three enrolled
// students, covering scheduled, unscheduled, and near-full courses.
//
// CS101 and MATH201 overlap on Monday and Wednesday mornings; PHYS150 is
// Tuesday/Thursday; SEM500 has no schedule and capacity 2.
func (b *Builder) WithStandardCatalog() *Builder {
	return b.
		WithCourse("CS101",
			Name("Intro to Computer Science"), Instructor("Turing"),
			MaxStudents(30), Schedule("MWF", "9:00-10:15"), Location("Hall A")).
		WithCourse("MATH201",
			Name("Linear Algebra"), Instructor("Noether"),
			MaxStudents(25), Schedule("MW", "10:00-11:15"), Location("Hall B")).
		WithCourse("PHYS150",
			Name("Mechanics"), Instructor("Curie"),
			MaxStudents(30), Schedule("TTh", "13:00-14:30")).
		WithCourse("SEM500",
			Name("Research Seminar"), Instructor("Hopper"),
			MaxStudents(2)).
		WithStudent("S001", "Ada Lovelace").
		WithStudent("S002", "Grace Hopper").
		WithStudent("S003", "Alan Kay").
		WithEnrollment("S001", "CS101").
		WithEnrollment("S001", "PHYS150").
		WithEnrollment("S002", "CS101").
		WithEnrollment("S003", "SEM500")
}

// WithFullCourse adds a course at capacity with the students filling it.
func (b *Builder) WithFullCourse(courseID string, capacity int) *Builder {
	b.WithCourse(courseID, MaxStudents(capacity))
	for i := 0; i < capacity; i++ {
		id := fmt.Sprintf("%s-filler-%02d", courseID, i)
		b.WithStudent(id, fmt.Sprintf("Filler %02d", i))
		b.WithEnrollment(id, courseID)
	}
	return b
}
