package service

import (
	"context"
	"testing"

	"stocklabel/internal/codegen"
	"stocklabel/internal/dto"
	"stocklabel/internal/model"
	"stocklabel/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubCustomerRepo is an in-memory CustomerRepository.
type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) FindByCode(_ context.Context, code string) (*model.Customer, error) {
	for _, c := range r.customers {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomerRepo) AllCodes(_ context.Context) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(r.customers))
	for _, c := range r.customers {
		out[c.Code] = struct{}{}
	}
	return out, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.customers[id]; ok {
		c.Active = false
	}
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

func newCustomerService(repo repository.CustomerRepository) CustomerService {
	return NewCustomerService(repo, codegen.New())
}

func TestCustomerCreate_AutoCodesAreMonotonic(t *testing.T) {
	svc := newCustomerService(newStubCustomerRepo())

	first, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "100000", first.Code)

	second, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Code: "auto", Name: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, "100001", second.Code)
}

func TestCustomerCreate_AutoSkipsPastExplicitCodes(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newCustomerService(repo)

	_, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Code: "200500", Name: "Manual"})
	require.NoError(t, err)

	// next auto code continues from the highest numeric code in use
	got, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Auto"})
	require.NoError(t, err)
	assert.Equal(t, "200501", got.Code)
}

// racingCustomerRepo simulates a concurrent request claiming the computed
// next code between the snapshot read and the insert: the first Create hits
// the unique index, and by then the rival row is in the store.
type racingCustomerRepo struct {
	*stubCustomerRepo
	raced bool
}

func (r *racingCustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	if !r.raced {
		r.raced = true
		rival := &model.Customer{Code: c.Code, Name: "rival", Active: true}
		_ = r.stubCustomerRepo.Create(ctx, rival)
		return gorm.ErrDuplicatedKey
	}
	return r.stubCustomerRepo.Create(ctx, c)
}

func TestCustomerCreate_AutoRetriesOnInsertRace(t *testing.T) {
	repo := &racingCustomerRepo{stubCustomerRepo: newStubCustomerRepo()}
	svc := newCustomerService(repo)

	got, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ada"})
	require.NoError(t, err)

	// the rival took 100000, the retry re-snapshots and lands on 100001
	assert.Equal(t, "100001", got.Code)
	rival, err := repo.FindByCode(context.Background(), "100000")
	require.NoError(t, err)
	assert.Equal(t, "rival", rival.Name)
}

func TestCustomerCreate_ExplicitInsertRaceNotRetried(t *testing.T) {
	repo := &racingCustomerRepo{stubCustomerRepo: newStubCustomerRepo()}
	svc := newCustomerService(repo)

	// the pre-insert duplicate check passes, then the insert collides;
	// explicit codes must surface the conflict, never silently reassign
	_, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Code: "300000", Name: "Ada"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCustomerCreate_ExplicitDuplicateRejected(t *testing.T) {
	svc := newCustomerService(newStubCustomerRepo())

	_, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Code: "100000", Name: "Ada"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateCustomerRequest{Code: "100000", Name: "Imposter"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCustomerUpdate_NeverTouchesCode(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newCustomerService(repo)

	created, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ada"})
	require.NoError(t, err)

	name := "Ada Lovelace"
	updated, err := svc.Update(context.Background(), uuid.MustParse(created.ID), dto.UpdateCustomerRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, created.Code, updated.Code, "account code is immutable")
}

func TestCustomerDeactivate(t *testing.T) {
	repo := newStubCustomerRepo()
	svc := newCustomerService(repo)

	created, err := svc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ada"})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	require.NoError(t, svc.Deactivate(context.Background(), id))
	got, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, got.Active)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), uuid.New()), ErrCustomerNotFound)
}
