package doctor

import (
	"context"
	"testing"

	"caredesk/internal/adapters/memory"
	"caredesk/internal/domain"
	"caredesk/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTestService() domain.DoctorService {
	store := memory.NewStore()
	return NewService(store, memory.NewDoctorRepository(store), validator.New())
}

func smith() domain.DoctorSaveRequest {
	return domain.DoctorSaveRequest{
		Name:           "Dr. Smith",
		Specialization: "Cardiology",
		Phone:          "555-0100",
		Email:          "smith@clinic.test",
		Experience:     ptr(10),
	}
}

func TestCreateGetList(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, smith())
	require.NoError(t, err)
	assert.NotZero(t, d.ID)

	got, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", got.Specialization)
	assert.Equal(t, 10, got.Experience)

	req := smith()
	req.Name = "Dr. Jones"
	req.Experience = ptr(0)
	second, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Experience)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name   string
		mutate func(*domain.DoctorSaveRequest)
		field  string
	}{
		{"missing name", func(r *domain.DoctorSaveRequest) { r.Name = "" }, "name"},
		{"missing specialization", func(r *domain.DoctorSaveRequest) { r.Specialization = "" }, "specialization"},
		{"missing phone", func(r *domain.DoctorSaveRequest) { r.Phone = "" }, "phone"},
		{"blank name", func(r *domain.DoctorSaveRequest) { r.Name = "   " }, "name"},
		{"blank specialization", func(r *domain.DoctorSaveRequest) { r.Specialization = " " }, "specialization"},
		{"bad email", func(r *domain.DoctorSaveRequest) { r.Email = "smith" }, "email"},
		{"missing experience", func(r *domain.DoctorSaveRequest) { r.Experience = nil }, "experience"},
		{"negative experience", func(r *domain.DoctorSaveRequest) { r.Experience = ptr(-1) }, "experience"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := smith()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestPartialUpdate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, smith())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, d.ID, domain.DoctorUpdateRequest{Experience: ptr(11)})
	require.NoError(t, err)
	assert.Equal(t, 11, updated.Experience)
	assert.Equal(t, "Dr. Smith", updated.Name)

	_, err = svc.Update(ctx, d.ID, domain.DoctorUpdateRequest{Email: ptr("nope")})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.Update(ctx, d.ID, domain.DoctorUpdateRequest{Name: ptr("  ")})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	renamed, err := svc.Update(ctx, d.ID, domain.DoctorUpdateRequest{Name: ptr(" Dr. Smyth "), Email: ptr(" smyth@clinic.test ")})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Smyth", renamed.Name)
	assert.Equal(t, "smyth@clinic.test", renamed.Email)

	_, err = svc.Update(ctx, d.ID+100, domain.DoctorUpdateRequest{Experience: ptr(1)})
	assert.ErrorIs(t, err, domain.ErrDoctorNotFound)
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, smith())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, d.ID))

	_, err = svc.Get(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, d.ID), domain.ErrDoctorNotFound)
}
