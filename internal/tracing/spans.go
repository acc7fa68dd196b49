package tracing

// Span attribute keys for registrar tracing.
const (
	// Entity attributes
	AttrStudentID = "student.id"
	AttrCourseID  = "course.id"

	// Store attributes
	AttrStoreBackend = "store.backend"

	// Load attributes
	AttrStudentsLoaded = "load.students"
	AttrCoursesLoaded  = "load.courses"
	AttrRowsSkipped    = "load.skipped"

	// Auth attributes
	AttrUsername = "auth.username"
	AttrRole     = "auth.role"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixRegistry = "registry."
	SpanPrefixStore    = "store."
	SpanPrefixAuth     = "auth."
)
