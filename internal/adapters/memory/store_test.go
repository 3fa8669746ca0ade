package memory

import (
	"context"
	"errors"
	"testing"

	"caredesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store       *Store
	users       domain.UserRepository
	patients    domain.PatientRepository
	doctors     domain.DoctorRepository
	assignments domain.AssignmentRepository
}

func newFixture() *fixture {
	s := NewStore()
	return &fixture{
		store:       s,
		users:       NewUserRepository(s),
		patients:    NewPatientRepository(s),
		doctors:     NewDoctorRepository(s),
		assignments: NewAssignmentRepository(s),
	}
}

func (f *fixture) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: email, Email: email, Password: "x"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) patient(t *testing.T, ownerID int64, name string) *domain.Patient {
	t.Helper()
	p := &domain.Patient{UserID: ownerID, Name: name, Age: 30, Gender: "F", Phone: "555"}
	require.NoError(t, f.patients.Create(context.Background(), p))
	return p
}

func (f *fixture) doctor(t *testing.T, name string) *domain.Doctor {
	t.Helper()
	d := &domain.Doctor{Name: name, Specialization: "Cardiology", Phone: "1", Email: "d@x.test", Experience: 10}
	require.NoError(t, f.doctors.Create(context.Background(), d))
	return d
}

func TestUserEmailIsUnique(t *testing.T) {
	f := newFixture()
	f.user(t, "a@x.test")

	err := f.users.Create(context.Background(), &domain.User{Email: "a@x.test"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestPatientsAreScopedByOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	a := f.user(t, "a@x.test")
	b := f.user(t, "b@x.test")
	p := f.patient(t, a.ID, "Alice")

	_, err := f.patients.GetByID(ctx, b.ID, p.ID)
	assert.ErrorIs(t, err, domain.ErrPatientNotFound)

	err = f.patients.Update(ctx, b.ID, &domain.Patient{ID: p.ID, Name: "Mallory"})
	assert.ErrorIs(t, err, domain.ErrPatientNotFound)

	assert.ErrorIs(t, f.patients.Delete(ctx, b.ID, p.ID), domain.ErrPatientNotFound)

	list, err := f.patients.List(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := f.patients.GetByID(ctx, a.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
}

func TestListsAreNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := f.user(t, "a@x.test")
	first := f.patient(t, u.ID, "first")
	second := f.patient(t, u.ID, "second")

	list, err := f.patients.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestAssignmentPairIsUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := f.user(t, "a@x.test")
	p := f.patient(t, u.ID, "Alice")
	d := f.doctor(t, "Dr. Smith")

	require.NoError(t, f.assignments.Create(ctx, &domain.Assignment{PatientID: p.ID, DoctorID: d.ID}))
	err := f.assignments.Create(ctx, &domain.Assignment{PatientID: p.ID, DoctorID: d.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicateAssignment)

	ok, err := f.assignments.Exists(ctx, p.ID, d.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAssignmentListsJoinBothSides(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := f.user(t, "a@x.test")
	p := f.patient(t, u.ID, "Alice")
	d := f.doctor(t, "Dr. Smith")
	a := &domain.Assignment{PatientID: p.ID, DoctorID: d.ID}
	require.NoError(t, f.assignments.Create(ctx, a))

	all, err := f.assignments.ListByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Alice", all[0].Patient.Name)
	assert.Equal(t, "Dr. Smith", all[0].Doctor.Name)
	assert.Nil(t, all[0].Doctor.Experience)

	byPatient, err := f.assignments.ListByPatient(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, byPatient, 1)
	require.NotNil(t, byPatient[0].Doctor.Experience)
	assert.Equal(t, 10, *byPatient[0].Doctor.Experience)

	got, err := f.assignments.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.OwnerID)
}

func TestDeletesCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := f.user(t, "a@x.test")
	p1 := f.patient(t, u.ID, "Alice")
	p2 := f.patient(t, u.ID, "Bob")
	d1 := f.doctor(t, "Dr. Smith")
	d2 := f.doctor(t, "Dr. Jones")

	for _, pair := range [][2]int64{{p1.ID, d1.ID}, {p1.ID, d2.ID}, {p2.ID, d1.ID}} {
		require.NoError(t, f.assignments.Create(ctx, &domain.Assignment{PatientID: pair[0], DoctorID: pair[1]}))
	}

	require.NoError(t, f.doctors.Delete(ctx, d2.ID))
	list, err := f.assignments.ListByPatient(ctx, p1.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.patients.Delete(ctx, u.ID, p1.ID))
	all, err := f.assignments.ListByOwner(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, f.users.Delete(ctx, u.ID))
	_, err = f.patients.GetByID(ctx, u.ID, p2.ID)
	assert.ErrorIs(t, err, domain.ErrPatientNotFound)
	ok, err := f.assignments.Exists(ctx, p2.ID, d1.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := f.user(t, "a@x.test")

	boom := errors.New("boom")
	err := f.store.WithinTx(ctx, func(txCtx context.Context) error {
		p := &domain.Patient{UserID: u.ID, Name: "ghost", Age: 1, Gender: "M", Phone: "1"}
		require.NoError(t, f.patients.Create(txCtx, p))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := f.patients.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWithinTxCommits(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	u := f.user(t, "a@x.test")

	err := f.store.WithinTx(ctx, func(txCtx context.Context) error {
		p := &domain.Patient{UserID: u.ID, Name: "kept", Age: 1, Gender: "M", Phone: "1"}
		if err := f.patients.Create(txCtx, p); err != nil {
			return err
		}
		return f.store.WithinTx(txCtx, func(inner context.Context) error {
			_, err := f.patients.GetByID(inner, u.ID, p.ID)
			return err
		})
	})
	require.NoError(t, err)

	list, err := f.patients.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
