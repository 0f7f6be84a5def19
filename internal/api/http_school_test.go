package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"sprachschule/internal/entity"
)

func TestRegisterBootstrapsOnlyFirstAccount(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	w := performRequest(r, http.MethodPost, "/api/auth/register",
		`{"name":"First Admin","email":"admin@example.com","password":"password123"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response entity.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Token == "" {
		t.Fatal("expected a token for the bootstrap admin")
	}
	if response.User.Role != entity.UserRoleAdmin {
		t.Fatalf("expected bootstrap role admin, got %s", response.User.Role)
	}

	// Once a user exists, registration is closed.
	w = performRequest(r, http.MethodPost, "/api/auth/register",
		`{"name":"Second","email":"second@example.com","password":"password123"}`, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
}

func TestLoginLifecycle(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	createAccount(t, h, "Admin", "admin@example.com", entity.UserRoleAdmin)

	w := performRequest(r, http.MethodPost, "/api/auth/login",
		`{"email":"admin@example.com","password":"password123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = performRequest(r, http.MethodPost, "/api/auth/login",
		`{"email":"admin@example.com","password":"wrong-password"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestCourseLifecycleAndOwnership(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	_, ownerToken := createAccount(t, h, "Owner", "owner@example.com", entity.UserRoleTeacher)
	_, otherToken := createAccount(t, h, "Other", "other@example.com", entity.UserRoleTeacher)

	w := performRequest(r, http.MethodPost, "/api/teacher/courses",
		`{"title":"German A1","language":"de","level":"A1","capacity":10}`, ownerToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var course entity.DbCourse
	if err := json.Unmarshal(w.Body.Bytes(), &course); err != nil {
		t.Fatalf("failed to unmarshal course: %v", err)
	}
	if course.ID == 0 {
		t.Fatal("expected course id to be set")
	}

	// Created course is readable by the owner.
	w = performRequest(r, http.MethodGet, fmt.Sprintf("/api/teacher/courses/%d", course.ID), "", ownerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	// Another teacher sees a 404, not a 403, for the same course.
	w = performRequest(r, http.MethodGet, fmt.Sprintf("/api/teacher/courses/%d", course.ID), "", otherToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign course, got %d", w.Code)
	}
	w = performRequest(r, http.MethodPatch, fmt.Sprintf("/api/teacher/courses/%d", course.ID),
		`{"title":"Hijacked"}`, otherToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign update, got %d", w.Code)
	}

	// Owner updates survive a round trip.
	w = performRequest(r, http.MethodPatch, fmt.Sprintf("/api/teacher/courses/%d", course.ID),
		`{"title":"German A1 Evening","is_featured":true}`, ownerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated entity.DbCourse
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to unmarshal course: %v", err)
	}
	if updated.Title != "German A1 Evening" || !updated.IsFeatured {
		t.Fatalf("update not reflected: %+v", updated)
	}
}

func TestLessonAppendOrder(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	_, token := createAccount(t, h, "Teacher", "teacher@example.com", entity.UserRoleTeacher)

	w := performRequest(r, http.MethodPost, "/api/teacher/courses",
		`{"title":"German B1","language":"de"}`, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	var course entity.DbCourse
	if err := json.Unmarshal(w.Body.Bytes(), &course); err != nil {
		t.Fatalf("failed to unmarshal course: %v", err)
	}

	var lessons []entity.DbLesson
	for i := 0; i < 3; i++ {
		w = performRequest(r, http.MethodPost, fmt.Sprintf("/api/teacher/courses/%d/lessons", course.ID),
			fmt.Sprintf(`{"title":"Lesson %d"}`, i+1), token)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
		}
		var lesson entity.DbLesson
		if err := json.Unmarshal(w.Body.Bytes(), &lesson); err != nil {
			t.Fatalf("failed to unmarshal lesson: %v", err)
		}
		lessons = append(lessons, lesson)
	}

	for i := 1; i < len(lessons); i++ {
		if lessons[i].OrderIndex <= lessons[i-1].OrderIndex {
			t.Fatalf("expected appended lessons in increasing order, got %d then %d",
				lessons[i-1].OrderIndex, lessons[i].OrderIndex)
		}
	}
}

func TestEnrollmentRules(t *testing.T) {
	h, repo := newTestHandler(t)
	r := newTestRouter(h)

	teacherUser, _ := createAccount(t, h, "Teacher", "teacher@example.com", entity.UserRoleTeacher)
	_, studentToken := createAccount(t, h, "Student", "student@example.com", entity.UserRoleStudent)

	teacherProfile := teacherProfileID(t, repo, teacherUser.ID)
	course := &entity.DbCourse{TeacherID: teacherProfile, Title: "Farsi 1", Language: "fa", Capacity: 1, IsActive: true}
	if err := repo.CreateCourse(context.Background(), course); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	body := fmt.Sprintf(`{"course_id":%d}`, course.ID)

	w := performRequest(r, http.MethodPost, "/api/student/enrollments", body, studentToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var enrollment entity.DbEnrollment
	if err := json.Unmarshal(w.Body.Bytes(), &enrollment); err != nil {
		t.Fatalf("failed to unmarshal enrollment: %v", err)
	}

	// A second active enrollment in the same course is refused.
	w = performRequest(r, http.MethodPost, "/api/student/enrollments", body, studentToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for duplicate enrollment, got %d", w.Code)
	}

	// The course is at capacity for everybody else.
	_, secondToken := createAccount(t, h, "Second", "second@example.com", entity.UserRoleStudent)
	w = performRequest(r, http.MethodPost, "/api/student/enrollments", body, secondToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for full course, got %d: %s", w.Code, w.Body.String())
	}
	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeCourseFull {
		t.Fatalf("expected code %s, got %s", ErrCodeCourseFull, response.Code)
	}

	// Cancelling frees the seat and allows re-enrollment.
	w = performRequest(r, http.MethodPost, fmt.Sprintf("/api/student/enrollments/%d/cancel", enrollment.ID), "", studentToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}
	w = performRequest(r, http.MethodPost, "/api/student/enrollments", body, secondToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected freed seat to be usable, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmissionRules(t *testing.T) {
	h, repo := newTestHandler(t)
	r := newTestRouter(h)

	teacherUser, teacherToken := createAccount(t, h, "Teacher", "teacher@example.com", entity.UserRoleTeacher)
	studentUser, studentToken := createAccount(t, h, "Student", "student@example.com", entity.UserRoleStudent)

	teacherProfile := teacherProfileID(t, repo, teacherUser.ID)
	studentProfile := studentProfileID(t, repo, studentUser.ID)

	course := &entity.DbCourse{TeacherID: teacherProfile, Title: "German A2", Language: "de", Capacity: 12, IsActive: true}
	if err := repo.CreateCourse(context.Background(), course); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	enrollment := &entity.DbEnrollment{StudentID: studentProfile, CourseID: course.ID, Status: entity.EnrollmentStatusActive}
	if err := repo.CreateEnrollment(context.Background(), enrollment); err != nil {
		t.Fatalf("failed to enroll student: %v", err)
	}

	// Assignment due yesterday: the submission must be flagged late.
	assignment := &entity.DbAssignment{
		TeacherID: teacherProfile,
		CourseID:  course.ID,
		Title:     "Essay",
		DueDate:   time.Now().Add(-24 * time.Hour),
	}
	if err := repo.CreateAssignment(context.Background(), assignment); err != nil {
		t.Fatalf("failed to create assignment: %v", err)
	}

	body := fmt.Sprintf(`{"assignment_id":%d,"content":"my answer"}`, assignment.ID)
	w := performRequest(r, http.MethodPost, "/api/student/submissions", body, studentToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var submission entity.DbSubmission
	if err := json.Unmarshal(w.Body.Bytes(), &submission); err != nil {
		t.Fatalf("failed to unmarshal submission: %v", err)
	}
	if !submission.IsLate {
		t.Fatal("expected submission after the due date to be flagged late")
	}

	// A second submission is refused and names the existing one.
	w = performRequest(r, http.MethodPost, "/api/student/submissions", body, studentToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for duplicate submission, got %d", w.Code)
	}
	var dup struct {
		SubmissionID uint `json:"submission_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &dup); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if dup.SubmissionID != submission.ID {
		t.Fatalf("expected existing submission id %d, got %d", submission.ID, dup.SubmissionID)
	}

	// The student may rewrite an ungraded submission.
	w = performRequest(r, http.MethodPatch, fmt.Sprintf("/api/student/submissions/%d", submission.ID),
		`{"content":"revised answer"}`, studentToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	// The teacher grades it.
	w = performRequest(r, http.MethodPatch, fmt.Sprintf("/api/teacher/submissions/%d/grade", submission.ID),
		`{"grade":"B+","feedback":"solid work"}`, teacherToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var graded entity.DbSubmission
	if err := json.Unmarshal(w.Body.Bytes(), &graded); err != nil {
		t.Fatalf("failed to unmarshal submission: %v", err)
	}
	if graded.Grade == nil || *graded.Grade != "B+" {
		t.Fatalf("expected grade B+, got %v", graded.Grade)
	}

	// Grading is append-only: a second grade attempt is refused.
	w = performRequest(r, http.MethodPatch, fmt.Sprintf("/api/teacher/submissions/%d/grade", submission.ID),
		`{"grade":"A","feedback":"changed my mind"}`, teacherToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for re-grading, got %d", w.Code)
	}
	var regrade APIError
	if err := json.Unmarshal(w.Body.Bytes(), &regrade); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if regrade.Code != ErrCodeSubmissionGraded {
		t.Fatalf("expected code %s, got %s", ErrCodeSubmissionGraded, regrade.Code)
	}
	if current, err := repo.GetSubmission(context.Background(), submission.ID); err != nil || current.Grade == nil || *current.Grade != "B+" {
		t.Fatalf("expected the original grade to survive, got %+v (err %v)", current, err)
	}

	// Once graded, the submission is immutable for the student.
	w = performRequest(r, http.MethodPatch, fmt.Sprintf("/api/student/submissions/%d", submission.ID),
		`{"content":"too late"}`, studentToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for graded submission, got %d", w.Code)
	}
	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeSubmissionGraded {
		t.Fatalf("expected code %s, got %s", ErrCodeSubmissionGraded, response.Code)
	}

	// Deletion is refused for the same reason.
	w = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/student/submissions/%d", submission.ID), "", studentToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for graded delete, got %d", w.Code)
	}
}

func TestDeleteUngradedSubmission(t *testing.T) {
	h, repo := newTestHandler(t)
	r := newTestRouter(h)

	teacherUser, _ := createAccount(t, h, "Teacher", "teacher@example.com", entity.UserRoleTeacher)
	studentUser, studentToken := createAccount(t, h, "Student", "student@example.com", entity.UserRoleStudent)

	teacherProfile := teacherProfileID(t, repo, teacherUser.ID)
	studentProfile := studentProfileID(t, repo, studentUser.ID)

	ctx := context.Background()
	course := &entity.DbCourse{TeacherID: teacherProfile, Title: "German B2", Language: "de", Capacity: 12, IsActive: true}
	if err := repo.CreateCourse(ctx, course); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	assignment := &entity.DbAssignment{TeacherID: teacherProfile, CourseID: course.ID, Title: "Reading", DueDate: time.Now().Add(24 * time.Hour)}
	if err := repo.CreateAssignment(ctx, assignment); err != nil {
		t.Fatalf("failed to create assignment: %v", err)
	}
	submission := &entity.DbSubmission{AssignmentID: assignment.ID, StudentID: studentProfile, Content: "draft", SubmittedAt: time.Now()}
	if err := repo.CreateSubmission(ctx, submission); err != nil {
		t.Fatalf("failed to create submission: %v", err)
	}

	w := performRequest(r, http.MethodDelete, fmt.Sprintf("/api/student/submissions/%d", submission.ID), "", studentToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}
	if _, err := repo.GetSubmission(ctx, submission.ID); err == nil {
		t.Fatal("expected submission to be gone")
	}
}

func TestDeleteAssignmentBlockedBySubmissions(t *testing.T) {
	h, repo := newTestHandler(t)
	r := newTestRouter(h)

	teacherUser, teacherToken := createAccount(t, h, "Teacher", "teacher@example.com", entity.UserRoleTeacher)
	studentUser, _ := createAccount(t, h, "Student", "student@example.com", entity.UserRoleStudent)

	teacherProfile := teacherProfileID(t, repo, teacherUser.ID)
	studentProfile := studentProfileID(t, repo, studentUser.ID)

	course := &entity.DbCourse{TeacherID: teacherProfile, Title: "German C1", Language: "de", Capacity: 12, IsActive: true}
	if err := repo.CreateCourse(context.Background(), course); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	assignment := &entity.DbAssignment{TeacherID: teacherProfile, CourseID: course.ID, Title: "Test", DueDate: time.Now().Add(24 * time.Hour)}
	if err := repo.CreateAssignment(context.Background(), assignment); err != nil {
		t.Fatalf("failed to create assignment: %v", err)
	}
	submission := &entity.DbSubmission{AssignmentID: assignment.ID, StudentID: studentProfile, Content: "answer", SubmittedAt: time.Now()}
	if err := repo.CreateSubmission(context.Background(), submission); err != nil {
		t.Fatalf("failed to create submission: %v", err)
	}

	w := performRequest(r, http.MethodDelete, fmt.Sprintf("/api/teacher/assignments/%d", assignment.ID), "", teacherToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	// The assignment must survive the refused delete.
	if _, err := repo.GetAssignment(context.Background(), assignment.ID); err != nil {
		t.Fatalf("expected assignment to still exist: %v", err)
	}
}

func TestDeleteTeacherBlockedByCourses(t *testing.T) {
	h, repo := newTestHandler(t)
	r := newTestRouter(h)

	_, adminToken := createAccount(t, h, "Admin", "admin@example.com", entity.UserRoleAdmin)
	teacherUser, _ := createAccount(t, h, "Teacher", "teacher@example.com", entity.UserRoleTeacher)

	teacherProfile := teacherProfileID(t, repo, teacherUser.ID)
	course := &entity.DbCourse{TeacherID: teacherProfile, Title: "Blocking course", Language: "de", Capacity: 12, IsActive: true}
	if err := repo.CreateCourse(context.Background(), course); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	w := performRequest(r, http.MethodDelete, fmt.Sprintf("/api/admin/teachers/%d", teacherProfile), "", adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Details struct {
			Resource string `json:"resource"`
			IDs      []uint `json:"ids"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Details.Resource != "course" || len(body.Details.IDs) != 1 || body.Details.IDs[0] != course.ID {
		t.Fatalf("expected blocking course %d, got %+v", course.ID, body.Details)
	}

	// User and profile must be untouched.
	if _, err := repo.GetUserByID(context.Background(), teacherUser.ID); err != nil {
		t.Fatalf("expected teacher user to still exist: %v", err)
	}
}

func TestDeleteLastAdminRefused(t *testing.T) {
	h, repo := newTestHandler(t)
	r := newTestRouter(h)

	adminUser, _ := createAccount(t, h, "Admin", "admin@example.com", entity.UserRoleAdmin)
	_, secondToken := createAccount(t, h, "Second Admin", "second@example.com", entity.UserRoleAdmin)

	// Two admins: deleting one works. Recreate and retry as the survivor.
	w := performRequest(r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", adminUser.ID), "", secondToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}

	survivor, err := repo.GetUserByEmail(context.Background(), "second@example.com")
	if err != nil {
		t.Fatalf("failed to load surviving admin: %v", err)
	}

	// The survivor cannot delete itself, and a helper admin cannot remove the
	// last admin either.
	w = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", survivor.ID), "", secondToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestChangeRoleSwapsProfile(t *testing.T) {
	h, repo := newTestHandler(t)
	r := newTestRouter(h)

	_, adminToken := createAccount(t, h, "Admin", "admin@example.com", entity.UserRoleAdmin)
	target, _ := createAccount(t, h, "Target", "target@example.com", entity.UserRoleStudent)

	w := performRequest(r, http.MethodPatch, fmt.Sprintf("/api/admin/users/%d/role", target.ID),
		`{"role":"teacher"}`, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	ctx := context.Background()
	if _, err := repo.GetTeacherProfileByUserID(ctx, target.ID); err != nil {
		t.Fatalf("expected a teacher profile after role change: %v", err)
	}
	if _, err := repo.GetStudentProfileByUserID(ctx, target.ID); err == nil {
		t.Fatal("expected the student profile to be removed")
	}
}

func TestPostSlugConflict(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	_, adminToken := createAccount(t, h, "Admin", "admin@example.com", entity.UserRoleAdmin)

	body := `{"slug":"willkommen","title":"Willkommen","language":"de","is_published":true}`
	w := performRequest(r, http.MethodPost, "/api/admin/posts", body, adminToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	w = performRequest(r, http.MethodPost, "/api/admin/posts", body, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for duplicate slug, got %d", w.Code)
	}
	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeDuplicateSlug {
		t.Fatalf("expected code %s, got %s", ErrCodeDuplicateSlug, response.Code)
	}

	// The published post is visible on the public site by slug.
	w = performRequest(r, http.MethodGet, "/api/public/posts/willkommen", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestDraftPostHiddenFromPublic(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	_, adminToken := createAccount(t, h, "Admin", "admin@example.com", entity.UserRoleAdmin)

	w := performRequest(r, http.MethodPost, "/api/admin/posts",
		`{"slug":"entwurf","title":"Entwurf","language":"de"}`, adminToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	w = performRequest(r, http.MethodGet, "/api/public/posts/entwurf", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected draft to be hidden, got %d", w.Code)
	}
}

func TestHeroSlideMove(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	_, adminToken := createAccount(t, h, "Admin", "admin@example.com", entity.UserRoleAdmin)

	var slides []entity.DbHeroSlide
	for i := 0; i < 2; i++ {
		w := performRequest(r, http.MethodPost, "/api/admin/hero-slides",
			fmt.Sprintf(`{"title":"Slide %d"}`, i+1), adminToken)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
		}
		var slide entity.DbHeroSlide
		if err := json.Unmarshal(w.Body.Bytes(), &slide); err != nil {
			t.Fatalf("failed to unmarshal slide: %v", err)
		}
		slides = append(slides, slide)
	}

	// Move the second slide up, then list and verify the order flipped.
	w := performRequest(r, http.MethodPost, fmt.Sprintf("/api/admin/hero-slides/%d/move", slides[1].ID),
		`{"direction":"up"}`, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = performRequest(r, http.MethodGet, "/api/admin/hero-slides", "", adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var listed struct {
		HeroSlides []entity.DbHeroSlide `json:"hero_slides"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to unmarshal slides: %v", err)
	}
	if len(listed.HeroSlides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(listed.HeroSlides))
	}
	if listed.HeroSlides[0].ID != slides[1].ID {
		t.Fatalf("expected slide %d first after move, got %d", slides[1].ID, listed.HeroSlides[0].ID)
	}

	// Moving the top slide further up is a harmless no-op.
	w = performRequest(r, http.MethodPost, fmt.Sprintf("/api/admin/hero-slides/%d/move", slides[1].ID),
		`{"direction":"up"}`, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for no-op move, got %d", w.Code)
	}
}

func TestPublicConsultationReturnsReference(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTestRouter(h)

	w := performRequest(r, http.MethodPost, "/api/public/consultations",
		`{"name":"Sara","phone":"+49 170 0000000","language":"de","level":"A1"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		ID        uint   `json:"id"`
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.ID == 0 || body.Reference == "" {
		t.Fatalf("expected id and reference, got %+v", body)
	}
}

func TestPublicCoursesHideInactive(t *testing.T) {
	h, repo := newTestHandler(t)
	r := newTestRouter(h)

	teacherUser, _ := createAccount(t, h, "Teacher", "teacher@example.com", entity.UserRoleTeacher)
	teacherProfile := teacherProfileID(t, repo, teacherUser.ID)

	ctx := context.Background()
	active := &entity.DbCourse{TeacherID: teacherProfile, Title: "Visible", Language: "de", Capacity: 12, IsActive: true}
	hidden := &entity.DbCourse{TeacherID: teacherProfile, Title: "Hidden", Language: "de", Capacity: 12, IsActive: false}
	if err := repo.CreateCourse(ctx, active); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	if err := repo.CreateCourse(ctx, hidden); err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	w := performRequest(r, http.MethodGet, "/api/public/courses", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var listed entity.CourseListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("failed to unmarshal courses: %v", err)
	}
	if len(listed.Courses) != 1 || listed.Courses[0].ID != active.ID {
		t.Fatalf("expected only the active course, got %+v", listed.Courses)
	}

	w = performRequest(r, http.MethodGet, fmt.Sprintf("/api/public/courses/%d", hidden.ID), "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected inactive course to be hidden, got %d", w.Code)
	}
}
