package services

import (
	"context"
	"fmt"
	"time"

	"github.com/loctime/controldoc/internal/domain/entities"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[string]*entities.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	if r.users == nil {
		r.users = map[string]*entities.User{}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("no rows")
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("no rows")
}

func (r *fakeUserRepo) AddCompanyAssociation(ctx context.Context, userID string, assoc entities.CompanyAssociation) error {
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("no rows")
	}
	u.Companies = append(u.Companies, assoc)
	return nil
}

func (r *fakeUserRepo) GetByCompany(ctx context.Context, companyID string) ([]*entities.User, error) {
	var out []*entities.User
	for _, u := range r.users {
		for _, assoc := range u.Companies {
			if assoc.CompanyID == companyID {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entities.Company
}

func (r *fakeCompanyRepo) Create(ctx context.Context, company *entities.Company) error {
	if r.companies == nil {
		r.companies = map[string]*entities.Company{}
	}
	r.companies[company.ID] = company
	return nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*entities.Company, error) {
	if c, ok := r.companies[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("no rows")
}

func (r *fakeCompanyRepo) GetByAdmin(ctx context.Context, adminID string) ([]*entities.Company, error) {
	var out []*entities.Company
	for _, c := range r.companies {
		if c.AdminID == adminID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo) GetByMember(ctx context.Context, userID string) ([]*entities.Company, error) {
	var out []*entities.Company
	for _, c := range r.companies {
		for _, u := range c.Users {
			if u == userID {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (r *fakeCompanyRepo) AddUser(ctx context.Context, companyID, userID string) error {
	c, ok := r.companies[companyID]
	if !ok {
		return fmt.Errorf("no rows")
	}
	c.Users = append(c.Users, userID)
	return nil
}

func (r *fakeCompanyRepo) Delete(ctx context.Context, id string) error {
	delete(r.companies, id)
	return nil
}

type fakeDocRepo struct {
	docs map[string]*entities.RequiredDocument
}

func (r *fakeDocRepo) Create(ctx context.Context, doc *entities.RequiredDocument) error {
	if r.docs == nil {
		r.docs = map[string]*entities.RequiredDocument{}
	}
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocRepo) GetByID(ctx context.Context, id string) (*entities.RequiredDocument, error) {
	if d, ok := r.docs[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("no rows")
}

func (r *fakeDocRepo) GetByCompany(ctx context.Context, companyID string) ([]*entities.RequiredDocument, error) {
	var out []*entities.RequiredDocument
	for _, d := range r.docs {
		if d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDocRepo) Delete(ctx context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

type fakeSubmissionRepo struct {
	subs map[string]*entities.Submission
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, sub *entities.Submission) error {
	if r.subs == nil {
		r.subs = map[string]*entities.Submission{}
	}
	copied := *sub
	r.subs[sub.ID] = &copied
	return nil
}

func (r *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*entities.Submission, error) {
	if s, ok := r.subs[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, fmt.Errorf("no rows")
}

func (r *fakeSubmissionRepo) List(ctx context.Context, filter *entities.SubmissionFilter) ([]*entities.Submission, error) {
	var out []*entities.Submission
	for _, s := range r.subs {
		if filter.UserID != "" && s.UserID != filter.UserID {
			continue
		}
		if filter.CompanyID != "" && s.CompanyID != filter.CompanyID {
			continue
		}
		if filter.RequiredDocumentID != "" && s.RequiredDocumentID != filter.RequiredDocumentID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeSubmissionRepo) UpdateReview(ctx context.Context, sub *entities.Submission) (bool, error) {
	stored, ok := r.subs[sub.ID]
	if !ok || stored.Status != entities.SubmissionPending {
		return false, nil
	}
	copied := *sub
	r.subs[sub.ID] = &copied
	return true, nil
}

func (r *fakeSubmissionRepo) CountByStatus(ctx context.Context, userID, companyID string) (map[entities.SubmissionStatus]int, error) {
	counts := map[entities.SubmissionStatus]int{}
	for _, s := range r.subs {
		if s.UserID == userID && s.CompanyID == companyID {
			counts[s.Status]++
		}
	}
	return counts, nil
}

type fakeNotificationRepo struct {
	created []*entities.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *entities.Notification) error {
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotificationRepo) GetByUser(ctx context.Context, userID string, limit int) ([]*entities.Notification, error) {
	var out []*entities.Notification
	for _, n := range r.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	for _, n := range r.created {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return fmt.Errorf("no rows")
}

// noopCache always misses so service tests hit the fake repositories.
type noopCache struct{}

func (noopCache) GetCompany(ctx context.Context, companyID string) (*entities.Company, error) {
	return nil, fmt.Errorf("cache miss")
}

func (noopCache) SetCompany(ctx context.Context, company *entities.Company) error { return nil }

func (noopCache) InvalidateCompany(ctx context.Context, companyID string) error { return nil }

func (noopCache) GetRequiredDocuments(ctx context.Context, companyID string) ([]*entities.RequiredDocument, error) {
	return nil, fmt.Errorf("cache miss")
}

func (noopCache) SetRequiredDocuments(ctx context.Context, companyID string, docs []*entities.RequiredDocument) error {
	return nil
}

func (noopCache) InvalidateRequiredDocuments(ctx context.Context, companyID string) error {
	return nil
}

var testTime = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
