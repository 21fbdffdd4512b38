package services

import (
	"context"
	"testing"
	"time"

	"github.com/loctime/controldoc/internal/domain/deadline"
	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/pkg/errors"
)

type submissionFixture struct {
	svc      *SubmissionService
	subRepo  *fakeSubmissionRepo
	notes    *fakeNotificationRepo
	admin    *entities.User
	employee *entities.User
	doc      *entities.RequiredDocument
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()

	admin := &entities.User{ID: "admin-1", Name: "Dana", Role: entities.RoleAdmin}
	employee := &entities.User{
		ID:   "user-1",
		Name: "Eli",
		Role: entities.RoleEmployee,
		Companies: []entities.CompanyAssociation{
			{CompanyID: "company-1", AdminID: "admin-1"},
		},
	}
	company := &entities.Company{ID: "company-1", Name: "Acme", Color: "#112233", AdminID: "admin-1", Users: []string{"user-1"}}
	doc := &entities.RequiredDocument{
		ID:               "doc-1",
		CompanyID:        "company-1",
		Name:             "Insurance certificate",
		Deadline:         entities.RecurrenceRule{Type: entities.RecurrenceMonthly, Day: 15},
		AllowedFileTypes: []string{"pdf"},
		CreatedAt:        testTime,
	}

	companyRepo := &fakeCompanyRepo{companies: map[string]*entities.Company{company.ID: company}}
	userRepo := &fakeUserRepo{users: map[string]*entities.User{admin.ID: admin, employee.ID: employee}}
	docRepo := &fakeDocRepo{docs: map[string]*entities.RequiredDocument{doc.ID: doc}}
	subRepo := &fakeSubmissionRepo{}
	notes := &fakeNotificationRepo{}

	companySvc := NewCompanyService(companyRepo, userRepo, noopCache{})
	docSvc := NewDocumentService(docRepo, noopCache{})
	svc := NewSubmissionService(subRepo, docSvc, companySvc, notes)

	return &submissionFixture{
		svc:      svc,
		subRepo:  subRepo,
		notes:    notes,
		admin:    admin,
		employee: employee,
		doc:      doc,
	}
}

func (f *submissionFixture) upload(t *testing.T) *entities.Submission {
	t.Helper()
	sub, err := f.svc.Create(context.Background(), f.employee, "company-1", "doc-1", "files/abc.pdf", "cert.pdf", "application/pdf", 1024, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return sub
}

func TestSubmissionCreate(t *testing.T) {
	f := newSubmissionFixture(t)

	sub := f.upload(t)
	if sub.Status != entities.SubmissionPending {
		t.Fatalf("status = %s, want pending", sub.Status)
	}
	if sub.ApprovedAt != nil || sub.ReviewedBy != nil {
		t.Fatal("new submission should carry no review fields")
	}
}

func TestSubmissionCreateRejectsDisallowedFileType(t *testing.T) {
	f := newSubmissionFixture(t)

	_, err := f.svc.Create(context.Background(), f.employee, "company-1", "doc-1", "files/abc.exe", "cert.exe", "application/octet-stream", 1024, nil)
	if _, ok := err.(*errors.BadRequestError); !ok {
		t.Fatalf("error = %v, want BadRequestError", err)
	}
}

func TestSubmissionCreateRequiresMembership(t *testing.T) {
	f := newSubmissionFixture(t)
	outsider := &entities.User{ID: "stranger", Role: entities.RoleEmployee}

	_, err := f.svc.Create(context.Background(), outsider, "company-1", "doc-1", "files/abc.pdf", "cert.pdf", "application/pdf", 1024, nil)
	if _, ok := err.(*errors.ForbiddenError); !ok {
		t.Fatalf("error = %v, want ForbiddenError", err)
	}
}

func TestReviewApprove(t *testing.T) {
	f := newSubmissionFixture(t)
	sub := f.upload(t)

	exp := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	reviewed, err := f.svc.Review(context.Background(), f.admin, sub.ID, entities.SubmissionApproved, &exp, nil)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if reviewed.Status != entities.SubmissionApproved {
		t.Fatalf("status = %s, want approved", reviewed.Status)
	}
	if reviewed.ApprovedAt == nil || reviewed.ReviewedBy == nil || *reviewed.ReviewedBy != "admin-1" {
		t.Fatalf("review fields not recorded: %+v", reviewed)
	}
	if reviewed.ExpirationDate == nil || !reviewed.ExpirationDate.Equal(exp) {
		t.Fatalf("expiration date not recorded: %+v", reviewed.ExpirationDate)
	}

	if len(f.notes.created) != 1 || f.notes.created[0].Type != entities.NotificationApproval {
		t.Fatalf("expected one approval notification, got %+v", f.notes.created)
	}
}

func TestReviewRejectRequiresReason(t *testing.T) {
	f := newSubmissionFixture(t)
	sub := f.upload(t)

	_, err := f.svc.Review(context.Background(), f.admin, sub.ID, entities.SubmissionRejected, nil, nil)
	if _, ok := err.(*errors.BadRequestError); !ok {
		t.Fatalf("error = %v, want BadRequestError", err)
	}

	reason := "document is illegible"
	reviewed, err := f.svc.Review(context.Background(), f.admin, sub.ID, entities.SubmissionRejected, nil, &reason)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if reviewed.RejectedAt == nil || reviewed.RejectionReason == nil || *reviewed.RejectionReason != reason {
		t.Fatalf("rejection fields not recorded: %+v", reviewed)
	}
	if len(f.notes.created) != 1 || f.notes.created[0].Type != entities.NotificationRejection {
		t.Fatalf("expected one rejection notification, got %+v", f.notes.created)
	}
}

func TestReviewTerminalStatesAreImmutable(t *testing.T) {
	f := newSubmissionFixture(t)
	sub := f.upload(t)

	if _, err := f.svc.Review(context.Background(), f.admin, sub.ID, entities.SubmissionApproved, nil, nil); err != nil {
		t.Fatalf("Review: %v", err)
	}

	reason := "changed my mind"
	_, err := f.svc.Review(context.Background(), f.admin, sub.ID, entities.SubmissionRejected, nil, &reason)
	if _, ok := err.(*errors.ConflictError); !ok {
		t.Fatalf("error = %v, want ConflictError", err)
	}
}

func TestReviewRequiresCompanyAdmin(t *testing.T) {
	f := newSubmissionFixture(t)
	sub := f.upload(t)

	_, err := f.svc.Review(context.Background(), f.employee, sub.ID, entities.SubmissionApproved, nil, nil)
	if _, ok := err.(*errors.ForbiddenError); !ok {
		t.Fatalf("error = %v, want ForbiddenError", err)
	}
}

func TestWorklistLifecycle(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	// Nothing uploaded yet: the document is missing.
	entries, err := f.svc.Worklist(ctx, f.employee, "company-1", testTime, false)
	if err != nil {
		t.Fatalf("Worklist: %v", err)
	}
	if len(entries) != 1 || entries[0].State != deadline.StateMissing {
		t.Fatalf("entries = %+v, want one missing entry", entries)
	}

	// A pending upload does not satisfy the requirement.
	sub := f.upload(t)
	entries, _ = f.svc.Worklist(ctx, f.employee, "company-1", testTime, false)
	if len(entries) != 1 || entries[0].State != deadline.StateMissing {
		t.Fatalf("entries = %+v, want still missing while pending", entries)
	}

	// Approval satisfies it.
	if _, err := f.svc.Review(ctx, f.admin, sub.ID, entities.SubmissionApproved, nil, nil); err != nil {
		t.Fatalf("Review: %v", err)
	}
	entries, _ = f.svc.Worklist(ctx, f.employee, "company-1", time.Now(), false)
	if len(entries) != 0 {
		t.Fatalf("entries = %+v, want empty worklist after approval", entries)
	}

	// A month past the deadline it shows up again as expired.
	later := time.Now().AddDate(0, 2, 0)
	entries, _ = f.svc.Worklist(ctx, f.employee, "company-1", later, false)
	if len(entries) != 1 || entries[0].State != deadline.StateExpired {
		t.Fatalf("entries = %+v, want one expired entry", entries)
	}
}

func TestDashboardCounts(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	sub := f.upload(t)
	if _, err := f.svc.Review(ctx, f.admin, sub.ID, entities.SubmissionApproved, nil, nil); err != nil {
		t.Fatalf("Review: %v", err)
	}
	f.upload(t) // second, still pending

	summary, err := f.svc.Dashboard(ctx, f.employee, "company-1", time.Now())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if summary.Satisfied != 1 || summary.Missing != 0 || summary.Expired != 0 {
		t.Fatalf("worklist counts = %+v", summary)
	}
	if summary.Approved != 1 || summary.Pending != 1 || summary.Rejected != 0 {
		t.Fatalf("status counts = %+v", summary)
	}
}
