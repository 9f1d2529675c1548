package usecase_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
)

// fakeUserRepo implementación en memoria de repository.UserRepository.
type fakeUserRepo struct {
	mu      sync.Mutex
	rows    map[string]*entity.UserRow
	updates []entity.ColumnAssignment
	lookups int
}

func newFakeUserRepo(rows ...*entity.UserRow) *fakeUserRepo {
	r := &fakeUserRepo{rows: map[string]*entity.UserRow{}}
	for _, row := range rows {
		r.rows[row.ID] = row
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, row *entity.UserRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Email == row.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *row
	r.rows[row.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.UserRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.UserRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(_ context.Context, f entity.UserFilter) ([]*entity.UserRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.UserRow
	for _, row := range r.rows {
		if f.Status != "" && row.Status != f.Status {
			continue
		}
		if f.Role != "" {
			s, _ := row.Roles.(string)
			if !strings.Contains(s, f.Role) {
				continue
			}
		}
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeUserRepo) UpdateColumns(_ context.Context, id string, set entity.ColumnAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.updates = append(r.updates, set)
	for i, col := range set.Columns {
		v := set.Values[i]
		switch col {
		case "full_name":
			row.FullName = v.(string)
		case "email":
			row.Email = v.(string)
		case "phone":
			row.Phone = v.(*string)
		case "roles":
			row.Roles = v.(string)
		case "status":
			row.Status = v.(string)
		case "hired_date":
			row.HiredDate = v.(*time.Time)
		}
	}
	row.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	row.LastLogin = &now
	return nil
}

func strPtr(s string) *string { return &s }
