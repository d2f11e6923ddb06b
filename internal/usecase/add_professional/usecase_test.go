package add_professional

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AvailabilityService/internal/invariants"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

type fakeBusinesses map[int64]*domain.Business

func (f fakeBusinesses) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	if b, ok := f[id]; ok {
		return b, nil
	}
	return nil, businessRepo.ErrBusinessNotFound
}

type fakeProfessionals struct {
	count   int
	created []*domain.Professional
}

func (f *fakeProfessionals) CountByBusiness(_ context.Context, _ int64) (int, error) {
	return f.count, nil
}

func (f *fakeProfessionals) Create(_ context.Context, p *domain.Professional) (*domain.Professional, error) {
	f.count++
	p.ID = int64(f.count)
	f.created = append(f.created, p)
	return p, nil
}

type fakeTx struct{ calls int }

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func newUseCase(plan domain.BusinessPlan, count int) (*UseCase, *fakeProfessionals, *fakeTx) {
	professionals := &fakeProfessionals{count: count}
	tx := &fakeTx{}
	uc := NewUseCase(
		fakeBusinesses{1: {ID: 1, OwnerID: 7, Plan: plan}},
		professionals,
		tx,
		(*metrics.Metrics)(nil),
		logger.NewNop(),
	)
	return uc, professionals, tx
}

func request() *Request {
	var schedule domain.WeeklySchedule
	schedule[1] = []domain.TimeWindow{{Start: "09:00", End: "18:00"}}
	return &Request{UserID: 7, BusinessID: 1, Name: "  Anna ", Schedule: schedule}
}

func TestExecute_AddsProfessional(t *testing.T) {
	uc, professionals, tx := newUseCase(domain.PlanDuo, 1)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.ID)
	assert.Equal(t, "Anna", resp.Name)
	assert.True(t, resp.IsActive)
	assert.Len(t, professionals.created, 1)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_PlanLimit(t *testing.T) {
	tests := []struct {
		plan  domain.BusinessPlan
		count int
	}{
		{plan: domain.PlanIndividual, count: 1},
		{plan: domain.PlanDuo, count: 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			uc, professionals, _ := newUseCase(tt.plan, tt.count)

			_, err := uc.Execute(context.Background(), request())

			require.Error(t, err)
			assert.True(t, errors.Is(err, invariants.ErrBusinessInvariant))
			assert.True(t, invariants.IsRule(err, invariants.RuleProfessionalLimit))
			assert.Empty(t, professionals.created)
		})
	}
}

func TestExecute_UnlimitedPlan(t *testing.T) {
	uc, _, _ := newUseCase(domain.PlanUnlimited, 500)

	_, err := uc.Execute(context.Background(), request())

	assert.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	uc, _, tx := newUseCase(domain.PlanUnlimited, 0)

	req := request()
	req.UserID = 8
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	req = request()
	req.BusinessID = 2
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	req = request()
	req.Name = " "
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request()
	req.Schedule[2] = []domain.TimeWindow{{Start: "18:00", End: "09:00"}}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, tx.calls)
}
