package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/jhoicas/workforce-analytics-api/internal/application/dto"
	"github.com/jhoicas/workforce-analytics-api/internal/domain"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/entity"
	"github.com/jhoicas/workforce-analytics-api/internal/domain/repository"
)

var errBoom = errors.New("boom")

// memStore almacén en memoria que comparten los repos falsos.
type memStore struct {
	companies   map[string]*entity.Company
	plans       map[string]*entity.SubscriptionPlan
	subs        []*entity.CompanySubscription
	users       map[string]*entity.User
	assignments map[[2]string]bool // (companyID, userID)
	snapshots   []*entity.AnalysisSnapshot
	headcount   []*entity.HeadcountRow
	nht         []*entity.NHTRow
	terms       []*entity.TermsRow
	employees   []*entity.EmployeeRecord

	failAssignmentsCreate bool
	failHeadcountInsert   bool
}

func newMemStore() *memStore {
	return &memStore{
		companies:   map[string]*entity.Company{},
		plans:       map[string]*entity.SubscriptionPlan{},
		users:       map[string]*entity.User{},
		assignments: map[[2]string]bool{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.companies {
		cp := *v
		c.companies[k] = &cp
	}
	for k, v := range s.plans {
		c.plans[k] = v
	}
	c.subs = append(c.subs, s.subs...)
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	for k, v := range s.assignments {
		c.assignments[k] = v
	}
	c.snapshots = append(c.snapshots, s.snapshots...)
	c.headcount = append(c.headcount, s.headcount...)
	c.nht = append(c.nht, s.nht...)
	c.terms = append(c.terms, s.terms...)
	c.employees = append(c.employees, s.employees...)
	c.failAssignmentsCreate = s.failAssignmentsCreate
	c.failHeadcountInsert = s.failHeadcountInsert
	return c
}

func (s *memStore) restore(from *memStore) {
	s.companies, s.plans, s.subs, s.users, s.assignments = from.companies, from.plans, from.subs, from.users, from.assignments
	s.snapshots, s.headcount, s.nht, s.terms, s.employees = from.snapshots, from.headcount, from.nht, from.terms, from.employees
}

// ────────────────────────────────────────────────────────────────
// Directorio
// ────────────────────────────────────────────────────────────────

type memCompanies struct{ s *memStore }

var _ repository.CompanyRepository = memCompanies{}

func (r memCompanies) Create(_ context.Context, c *entity.Company) error {
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r memCompanies) Update(_ context.Context, c *entity.Company) error {
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r memCompanies) ListChildren(_ context.Context, parentID string) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.s.companies {
		if c.ParentCompanyID == parentID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memCompanies) ListByIDs(_ context.Context, ids []string) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, id := range ids {
		if c, ok := r.s.companies[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memSubscriptions struct{ s *memStore }

var _ repository.SubscriptionRepository = memSubscriptions{}

func (r memSubscriptions) ListPlans(_ context.Context) ([]*entity.SubscriptionPlan, error) {
	out := make([]*entity.SubscriptionPlan, 0, len(r.s.plans))
	for _, p := range r.s.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memSubscriptions) GetPlan(_ context.Context, id string) (*entity.SubscriptionPlan, error) {
	return r.s.plans[id], nil
}

func (r memSubscriptions) CreateCompanySubscription(_ context.Context, sub *entity.CompanySubscription) error {
	r.s.subs = append(r.s.subs, sub)
	return nil
}

func (r memSubscriptions) GetLatestByCompany(_ context.Context, companyID string) (*entity.CompanySubscription, error) {
	var latest *entity.CompanySubscription
	for _, s := range r.s.subs {
		if s.CompanyID == companyID && (latest == nil || !s.StartDate.Before(latest.StartDate)) {
			latest = s
		}
	}
	return latest, nil
}

type memUsers struct{ s *memStore }

var _ repository.UserRepository = memUsers{}

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	for _, o := range r.s.users {
		if o.CompanyID == u.CompanyID && strings.EqualFold(o.Email, u.Email) {
			return domain.ErrConflict
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error) {
	u, _ := r.GetByID(ctx, id)
	if u == nil || u.CompanyID != companyID {
		return nil, nil
	}
	return u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.sorted() {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r memUsers) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	for _, u := range r.sorted() {
		if u.CompanyID == companyID && strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r memUsers) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r memUsers) ListByCompany(_ context.Context, companyID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.sorted() {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r memUsers) ListByIDs(_ context.Context, ids []string) ([]*entity.User, error) {
	var out []*entity.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memUsers) ListActiveSuperUsers(_ context.Context, companyID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.sorted() {
		if u.CompanyID == companyID && u.IsActive && u.IsSuperUser() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r memUsers) MaxEmployeeNumber(_ context.Context, companyID string) (int, error) {
	highest := 0
	for _, u := range r.s.users {
		if u.CompanyID == companyID && u.EmployeeNumber > highest {
			highest = u.EmployeeNumber
		}
	}
	return highest, nil
}

func (r memUsers) sorted() []*entity.User {
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeNumber != out[j].EmployeeNumber {
			return out[i].EmployeeNumber < out[j].EmployeeNumber
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type memAssignments struct{ s *memStore }

var _ repository.AssignmentRepository = memAssignments{}

func (r memAssignments) Exists(_ context.Context, companyID, userID string) (bool, error) {
	return r.s.assignments[[2]string{companyID, userID}], nil
}

func (r memAssignments) ListSubCompanyIDsForUser(_ context.Context, userID, parentID string) ([]string, error) {
	var out []string
	for k := range r.s.assignments {
		c, ok := r.s.companies[k[0]]
		if k[1] == userID && ok && c.ParentCompanyID == parentID {
			out = append(out, k[0])
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r memAssignments) ListUserIDsByCompany(_ context.Context, companyID string) ([]string, error) {
	out := []string{}
	for k := range r.s.assignments {
		if k[0] == companyID {
			out = append(out, k[1])
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r memAssignments) CreateMany(_ context.Context, list []entity.CompanySuperUserAssignment) error {
	if r.s.failAssignmentsCreate {
		return errBoom
	}
	for _, a := range list {
		r.s.assignments[[2]string{a.CompanyID, a.UserID}] = true
	}
	return nil
}

func (r memAssignments) DeleteByCompany(_ context.Context, companyID string) error {
	for k := range r.s.assignments {
		if k[0] == companyID {
			delete(r.s.assignments, k)
		}
	}
	return nil
}

// ────────────────────────────────────────────────────────────────
// Snapshots y datasets
// ────────────────────────────────────────────────────────────────

type memSnapshots struct{ s *memStore }

var _ repository.SnapshotRepository = memSnapshots{}

func (r memSnapshots) Create(_ context.Context, snap *entity.AnalysisSnapshot) error {
	r.s.snapshots = append(r.s.snapshots, snap)
	return nil
}

func (r memSnapshots) GetByID(_ context.Context, id string) (*entity.AnalysisSnapshot, error) {
	for _, s := range r.s.snapshots {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r memSnapshots) List(_ context.Context) ([]*entity.AnalysisSnapshot, error) {
	out := append([]*entity.AnalysisSnapshot(nil), r.s.snapshots...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memSnapshots) ListFinal(_ context.Context, year, throughMonth int) ([]*entity.AnalysisSnapshot, error) {
	var out []*entity.AnalysisSnapshot
	for _, s := range r.s.snapshots {
		if s.IsFinal && s.Year == year && s.Month >= 1 && s.Month <= throughMonth {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r memSnapshots) ExistsFinal(_ context.Context, year, month int) (bool, error) {
	for _, s := range r.s.snapshots {
		if s.IsFinal && s.Year == year && s.Month == month {
			return true, nil
		}
	}
	return false, nil
}

type memHeadcount struct{ s *memStore }

func (r memHeadcount) DeleteAll(context.Context) error { r.s.headcount = nil; return nil }
func (r memHeadcount) InsertMany(_ context.Context, rows []*entity.HeadcountRow) (int64, error) {
	if r.s.failHeadcountInsert {
		return 0, errBoom
	}
	r.s.headcount = append(r.s.headcount, rows...)
	return int64(len(rows)), nil
}
func (r memHeadcount) List(context.Context) ([]*entity.HeadcountRow, error) { return r.s.headcount, nil }

type memNHT struct{ s *memStore }

func (r memNHT) DeleteAll(context.Context) error { r.s.nht = nil; return nil }
func (r memNHT) InsertMany(_ context.Context, rows []*entity.NHTRow) (int64, error) {
	r.s.nht = append(r.s.nht, rows...)
	return int64(len(rows)), nil
}
func (r memNHT) List(context.Context) ([]*entity.NHTRow, error) { return r.s.nht, nil }

type memTerms struct{ s *memStore }

func (r memTerms) DeleteAll(context.Context) error { r.s.terms = nil; return nil }
func (r memTerms) InsertMany(_ context.Context, rows []*entity.TermsRow) (int64, error) {
	r.s.terms = append(r.s.terms, rows...)
	return int64(len(rows)), nil
}
func (r memTerms) List(context.Context) ([]*entity.TermsRow, error) { return r.s.terms, nil }

type memEmployees struct{ s *memStore }

func (r memEmployees) DeleteAll(context.Context) error { r.s.employees = nil; return nil }
func (r memEmployees) InsertMany(_ context.Context, rows []*entity.EmployeeRecord) (int64, error) {
	r.s.employees = append(r.s.employees, rows...)
	return int64(len(rows)), nil
}
func (r memEmployees) List(context.Context) ([]*entity.EmployeeRecord, error) { return r.s.employees, nil }

// ────────────────────────────────────────────────────────────────
// Transacciones, notificaciones, importador, PDF
// ────────────────────────────────────────────────────────────────

// memTx ejecuta el callback sobre el mismo store y lo restaura si devuelve error.
type memTx struct {
	s     *memStore
	calls int
}

func (t *memTx) RunDirectory(_ context.Context, fn func(repository.CompanyRepository, repository.SubscriptionRepository, repository.UserRepository, repository.AssignmentRepository) error) error {
	t.calls++
	before := t.s.clone()
	if err := fn(memCompanies{t.s}, memSubscriptions{t.s}, memUsers{t.s}, memAssignments{t.s}); err != nil {
		t.s.restore(before)
		return err
	}
	return nil
}

func (t *memTx) RunWorkforce(_ context.Context, fn func(repository.HeadcountRepository, repository.NHTRepository, repository.TermsRepository, repository.EmployeeRepository) error) error {
	t.calls++
	before := t.s.clone()
	if err := fn(memHeadcount{t.s}, memNHT{t.s}, memTerms{t.s}, memEmployees{t.s}); err != nil {
		t.s.restore(before)
		return err
	}
	return nil
}

type sentMail struct{ to, subject, body string }

type fakeNotifier struct {
	sent []sentMail
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, to, subject, body string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{to, subject, body})
	return nil
}

type fakeImporter struct {
	headcount []*entity.HeadcountRow
	nht       []*entity.NHTRow
	terms     []*entity.TermsRow
	employees []*entity.EmployeeRecord
	userSheet [][]string
	err       error
}

func (f *fakeImporter) ReadHeadcount(io.Reader) ([]*entity.HeadcountRow, error) { return f.headcount, f.err }
func (f *fakeImporter) ReadNHT(io.Reader) ([]*entity.NHTRow, error) { return f.nht, f.err }
func (f *fakeImporter) ReadTerms(io.Reader) ([]*entity.TermsRow, error) { return f.terms, f.err }
func (f *fakeImporter) ReadEmployees(io.Reader) ([]*entity.EmployeeRecord, error) {
	return f.employees, f.err
}
func (f *fakeImporter) ReadUserSheet(io.Reader) ([][]string, error) { return f.userSheet, f.err }

type fakeRenderer struct{ got *dto.YTDReport }

func (f *fakeRenderer) RenderYTD(r *dto.YTDReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

func emptyBody() io.Reader { return bytes.NewReader(nil) }
